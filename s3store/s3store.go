/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 *
 * Package s3store keeps objects in an Amazon S3 bucket. A Store serves two
 * roles: it is an httpcache.Cache for the club and USCF web clients, and it
 * is a plain keyed blob store for tournament snapshots. It is based on the
 * original github.com/sourcegraph/s3cache but uses aws-sdk-go-v2.
 */
package s3store

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned by GetObject when the key does not exist.
var ErrNotFound = errors.New("object not found")

const cachePrefix = "s3cache"

// API is the subset of *s3.Client used by Store.
type API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput,
		optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput,
		optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput,
		optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput,
		optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input,
		optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Store objects store and retrieve data using Amazon S3.
type Store struct {
	// Client is the s3 client used when interacting with S3. Init() fills it
	// from the default AWS config unless the caller has already set one.
	Client API

	bucketName string

	// gzip indicates whether objects are gzipped on write and gunzipped on
	// read. If true, object keys get the suffix ".gz".
	gzip bool

	log zerolog.Logger

	// ctx is used by the httpcache.Cache methods, which take no context
	ctx context.Context
}

// New returns a Store over the named bucket. Callers should invoke Init() on
// the returned Store before use.
func New(ctx context.Context, bucketName string, gzip bool,
	log zerolog.Logger) *Store {

	return &Store{
		ctx:        ctx,
		bucketName: bucketName,
		gzip:       gzip,
		log:        log,
	}
}

func (s *Store) Bucket() string {
	return s.bucketName
}

// Init loads the default AWS configuration (environment variables, shared
// config and credentials files) when no Client is set, then verifies the
// bucket can be reached and listed.
func (s *Store) Init() error {
	if s.Client == nil {
		cfg, err := config.LoadDefaultConfig(s.ctx)
		if err != nil {
			return fmt.Errorf("s3store.init: failed to load AWS config: %w", err)
		}
		s.Client = s3.NewFromConfig(cfg)
	}

	if _, err := s.Client.HeadBucket(s.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName),
	}); err != nil {
		return fmt.Errorf("s3store.init: head bucket failed for %s: %w",
			s.bucketName, err)
	}
	if _, err := s.Client.ListObjectsV2(s.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucketName),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3store.init: list objects failed for %s: %w",
			s.bucketName, err)
	}

	return nil
}

// GetObject reads the object stored under key.
func (s *Store) GetObject(ctx context.Context, key string) ([]byte, error) {
	objKey := s.objectKey(key)
	resp, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objKey),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("%v: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("s3store.get: failed to get object %v/%v: %w",
			s.bucketName, objKey, err)
	}
	defer resp.Body.Close()

	rdr := resp.Body
	if s.gzip {
		rdr, err = gzip.NewReader(rdr)
		if err != nil {
			return nil, fmt.Errorf("s3store.get: failed to open compressed object %v/%v: %w",
				s.bucketName, objKey, err)
		}
		defer rdr.Close()
	}
	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, fmt.Errorf("s3store.get: failed to read object %v/%v: %w",
			s.bucketName, objKey, err)
	}

	return data, nil
}

// PutObject stores data under key, replacing any previous object.
func (s *Store) PutObject(ctx context.Context, key string, data []byte) error {
	objKey := s.objectKey(key)
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objKey),
		Body:   bytes.NewReader(data),
	}

	if s.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			return fmt.Errorf("s3store.put: failed to gzip data for %v/%v: %w",
				s.bucketName, objKey, err)
		}
		if err := gw.Close(); err != nil {
			return fmt.Errorf("s3store.put: failed to close gzip writer for %v/%v: %w",
				s.bucketName, objKey, err)
		}
		input.Body = bytes.NewReader(buf.Bytes())
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := s.Client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3store.put: put failed for %v/%v: %w", s.bucketName,
			objKey, err)
	}

	return nil
}

// DeleteObject removes the object stored under key. Deleting a missing key
// is not an error.
func (s *Store) DeleteObject(ctx context.Context, key string) error {
	objKey := s.objectKey(key)
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objKey),
	})
	if err != nil && !isNoSuchKey(err) {
		return fmt.Errorf("s3store.delete: delete failed for %v/%v: %w",
			s.bucketName, objKey, err)
	}

	return nil
}

// ListObjects returns the keys stored under prefix, with the prefix and any
// ".gz" suffix removed.
func (s *Store) ListObjects(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	prefix = strings.TrimPrefix(prefix, "/")

	paginator := s3.NewListObjectsV2Paginator(s.Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucketName),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3store.list: list failed for %v/%v: %w",
				s.bucketName, prefix, err)
		}
		for _, obj := range page.Contents {
			k := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			keys = append(keys, strings.TrimSuffix(k, ".gz"))
		}
	}

	return keys, nil
}

// Get implements httpcache.Cache.
func (s *Store) Get(key string) ([]byte, bool) {
	data, err := s.GetObject(s.ctx, s.cacheKey(key))
	if err != nil {
		// a missing key just indicates a cache miss
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn().Err(err).Msg("s3store.get: cache read failed")
		}
		return []byte{}, false
	}
	return data, true
}

// Set implements httpcache.Cache.
func (s *Store) Set(key string, data []byte) {
	if err := s.PutObject(s.ctx, s.cacheKey(key), data); err != nil {
		s.log.Warn().Err(err).Msg("s3store.set: cache write failed")
	}
}

// Delete implements httpcache.Cache.
func (s *Store) Delete(key string) {
	if err := s.DeleteObject(s.ctx, s.cacheKey(key)); err != nil {
		s.log.Warn().Err(err).Msg("s3store.delete: cache delete failed")
	}
}

func (s *Store) cacheKey(key string) string {
	h := md5.New()
	io.WriteString(h, key)
	return fmt.Sprintf("%v/%v", cachePrefix, hex.EncodeToString(h.Sum(nil)))
}

func (s *Store) objectKey(key string) string {
	objKey := strings.TrimPrefix(key, "/")
	if s.gzip {
		objKey += ".gz"
	}
	return objKey
}

func isNoSuchKey(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound"
	}
	return false
}
