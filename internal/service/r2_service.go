package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	cfg "github.com/maheshrc27/insta-signature/configs"
	"github.com/maheshrc27/insta-signature/internal/repository"
)

// R2Service stores thumbnails in a Cloudflare R2 bucket under a flat prefix.
type R2Service struct {
	config cfg.R2
	client *s3.Client
}

func NewR2Service(c cfg.Config, optFns ...func(*s3.Options)) (*R2Service, error) {
	r2 := c.R2
	if r2.BucketName == "" || r2.AccessKey == "" || r2.SecretKey == "" {
		return nil, errors.New("r2 bucket and credentials must be configured")
	}

	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r2.AccessKey, r2.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	opts := append([]func(*s3.Options){func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2.AccountID))
	}}, optFns...)

	return &R2Service{config: r2, client: s3.NewFromConfig(awsCfg, opts...)}, nil
}

func (r *R2Service) Key(postID string) (string, error) {
	if err := repository.ValidatePostID(postID); err != nil {
		return "", err
	}
	return path.Join(r.config.Prefix, postID+repository.ThumbnailExt), nil
}

// Save uploads the thumbnail and returns its public URL.
func (r *R2Service) Save(ctx context.Context, postID string, data []byte) (string, error) {
	key, err := r.Key(postID)
	if err != nil {
		return "", err
	}
	input := &s3.PutObjectInput{
		Bucket:       aws.String(r.config.BucketName),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String("image/jpeg"),
		CacheControl: aws.String("public, max-age=86400"),
	}

	if _, err := r.client.PutObject(ctx, input); err != nil {
		slog.Info(err.Error())
		return "", err
	}

	return r.config.PublicURL + "/" + key, nil
}
