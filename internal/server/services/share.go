package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/lovelab/internal/common"
	sc "github.com/dmitrijs2005/lovelab/internal/server/config"
	"github.com/google/uuid"
)

// ShareLinkValidity is how long a presigned share card link stays valid.
const ShareLinkValidity = 7 * 24 * time.Hour

const maxShareCardLength = 2000

var ErrEmptyCard = errors.New("share card is empty")

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ShareService publishes share cards (a calculator or quiz result plus the
// app link) to S3-compatible storage and hands back a presigned link.
type ShareService struct {
	config *sc.Config
	now    func() time.Time
}

func NewShareService(cfg *sc.Config) *ShareService {
	return &ShareService{config: cfg, now: time.Now}
}

// GetRandomCardKey returns a date-partitioned object key for a new card.
func GetRandomCardKey(t time.Time) string {
	return fmt.Sprintf("cards/%d/%02d/%02d/%v.txt", t.Year(), t.Month(), t.Day(), uuid.New())
}

func (s *ShareService) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// CardBody is the stored card: the shared text followed by the app link.
func CardBody(text string) string {
	return strings.TrimSpace(text) + "\n" + common.ShareURL + "\n"
}

// Publish stores the card and returns a presigned GET URL and its expiry.
func (s *ShareService) Publish(ctx context.Context, text string) (string, time.Time, error) {
	if strings.TrimSpace(text) == "" {
		return "", time.Time{}, ErrEmptyCard
	}
	if len(text) > maxShareCardLength {
		return "", time.Time{}, fmt.Errorf("%w: share card exceeds %d bytes", common.ErrTooLong, maxShareCardLength)
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return "", time.Time{}, err
	}

	bucket := s.config.S3Bucket
	now := s.now()
	key := GetRandomCardKey(now)

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        strings.NewReader(CardBody(text)),
		ContentType: aws.String("text/plain; charset=utf-8"),
	}); err != nil {
		return "", time.Time{}, fmt.Errorf("error storing share card: %w", err)
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(ShareLinkValidity))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("error presigning share card: %w", err)
	}

	return req.URL, now.Add(ShareLinkValidity), nil
}
