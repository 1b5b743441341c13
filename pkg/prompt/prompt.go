package prompt

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/sambigeara/machi/pkg/service"
)

const (
	skipKey  = "Skip them and continue"
	abortKey = "Abort"
)

// ConfirmSkip reports the lists that failed to load and asks whether to carry on
// without them. Any prompt failure (including Ctrl-C) counts as abort.
func ConfirmSkip(failed []service.LoadResult) bool {
	return confirmSkip(os.Stdout, failed, func(label string) (string, error) {
		sel := promptui.Select{
			Label: label,
			Items: []string{skipKey, abortKey},
		}
		_, res, err := sel.Run()
		return res, err
	})
}

func confirmSkip(w io.Writer, failed []service.LoadResult, ask func(string) (string, error)) bool {
	fmt.Fprint(w, FailureSummary(failed))
	res, err := ask(fmt.Sprintf("%d list(s) could not be loaded", len(failed)))
	if err != nil {
		return false
	}
	return res == skipKey
}

// FailureSummary formats failed results one per line
func FailureSummary(failed []service.LoadResult) string {
	var b strings.Builder
	for _, f := range failed {
		fmt.Fprintf(&b, "  %s %s: %v\n", f.Source, f.Path, f.Err)
	}
	return b.String()
}
