package service

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

const defaultS3Region = "eu-west-1"

// S3Source pulls list files stored under a bucket prefix
type S3Source struct {
	svc    s3iface.S3API
	bucket string
	prefix string
	filter remoteFilter
}

// NewS3Source creates a session from the ambient AWS credential chain and
// returns a source for the remote
func NewS3Source(r S3Remote) (*S3Source, error) {
	f := remoteFilter{Match: r.Match, MatchAll: r.MatchAll}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("s3 remote %s: %w", r.Bucket, err)
	}

	region := r.Region
	if region == "" {
		region = defaultS3Region
	}
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}
	return newS3SourceWithClient(s3.New(sess), r.Bucket, r.Prefix, f), nil
}

func newS3SourceWithClient(svc s3iface.S3API, bucket, prefix string, f remoteFilter) *S3Source {
	return &S3Source{
		svc:    svc,
		bucket: bucket,
		prefix: prefix,
		filter: f,
	}
}

// Name ...
func (s *S3Source) Name() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.prefix)
}

func (s *S3Source) getFileNames(ctx context.Context) ([]string, error) {
	fileNames := []string{}
	err := s.svc.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	}, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, item := range page.Contents {
			fileNames = append(fileNames, aws.StringValue(item.Key))
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("unable to list items in bucket %q: %w", s.bucket, err)
	}
	return fileNames, nil
}

func (s *S3Source) getList(ctx context.Context, key string) (TodoList, error) {
	out, err := s.svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return TodoList{}, err
	}
	defer out.Body.Close()

	dat, err := io.ReadAll(out.Body)
	if err != nil {
		return TodoList{}, err
	}
	return ParseTodoList(dat)
}

// Load fetches every object under the prefix. Lists whose name doesn't pass the
// remote's match filter are left out entirely.
func (s *S3Source) Load(ctx context.Context) ([]LoadResult, error) {
	keys, err := s.getFileNames(ctx)
	if err != nil {
		return nil, err
	}

	results := []LoadResult{}
	for _, k := range keys {
		r := LoadResult{Source: s.Name(), Path: k}
		r.List, r.Err = s.getList(ctx, k)
		if r.Err == nil && !s.filter.keep(r.List.Name) {
			continue
		}
		results = append(results, r)
	}
	return results, nil
}
