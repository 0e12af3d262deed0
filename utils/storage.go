package utils

import (
	"context"
	"net/url"
	"time"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/beatwave/onair/common"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// RecordingStore client for the object store holding finished recordings
type RecordingStore interface {
	/*
		SignPlaybackURL produce a presigned playback URL for a recording object

			@param ctxt context.Context - execution context
			@param bucketName string - bucket holding the recording
			@param objectKey string - recording object name within the bucket
			@param ttl time.Duration - how long the URL stays valid
			@returns presigned playback URL
	*/
	SignPlaybackURL(
		ctxt context.Context, bucketName, objectKey string, ttl time.Duration,
	) (string, error)

	/*
		DeleteRecordingObject delete a recording object from a bucket

			@param ctxt context.Context - execution context
			@param bucketName string - bucket holding the recording
			@param objectKey string - recording object name within the bucket
	*/
	DeleteRecordingObject(ctxt context.Context, bucketName, objectKey string) error
}

// recordingStoreImpl implements RecordingStore
type recordingStoreImpl struct {
	goutils.Component
	s3 *minio.Client
}

/*
NewRecordingStore define new recording object store client

	@param config common.S3Config - S3 object store config
	@returns new client
*/
func NewRecordingStore(config common.S3Config) (RecordingStore, error) {
	logTags := log.Fields{
		"module":    "utils",
		"component": "recording-store",
		"instance":  config.ServerEndpoint,
	}

	// Define the core minio client
	opts := &minio.Options{Secure: config.UseTLS}
	if config.Creds != nil {
		opts.Creds = credentials.NewStaticV4(
			config.Creds.AccessKey, config.Creds.SecretAccessKey, "",
		)
	}
	client, err := minio.New(config.ServerEndpoint, opts)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Unable to define minio S3 client")
		return nil, err
	}

	return &recordingStoreImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		}, s3: client,
	}, nil
}

func (s *recordingStoreImpl) SignPlaybackURL(
	ctxt context.Context, bucketName, objectKey string, ttl time.Duration,
) (string, error) {
	logTags := s.GetLogTagsForContext(ctxt)

	signed, err := s.s3.PresignedGetObject(ctxt, bucketName, objectKey, ttl, url.Values{})
	if err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("bucket", bucketName).
			WithField("object", objectKey).
			Error("Unable to presign playback URL")
		return "", err
	}
	return signed.String(), nil
}

func (s *recordingStoreImpl) DeleteRecordingObject(
	ctxt context.Context, bucketName, objectKey string,
) error {
	return s.s3.RemoveObject(ctxt, bucketName, objectKey, minio.RemoveObjectOptions{})
}
