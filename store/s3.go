/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mikeb26/bcc-swiss/s3store"
	"github.com/mikeb26/bcc-swiss/swiss"
)

const s3Prefix = "tournaments/"

// objectStore is the part of *s3store.Store used by S3Store.
type objectStore interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
	PutObject(ctx context.Context, key string, data []byte) error
	DeleteObject(ctx context.Context, key string) error
	ListObjects(ctx context.Context, prefix string) ([]string, error)
}

// S3Store keeps snapshots as objects under "tournaments/" in a bucket.
type S3Store struct {
	objects objectStore
}

// NewS3Store returns an S3Store over an initialized s3store.Store.
func NewS3Store(objects *s3store.Store) *S3Store {
	return &S3Store{objects: objects}
}

func objectKey(id string) string {
	return s3Prefix + id + snapshotExt
}

func (sst *S3Store) Load(ctx context.Context, id string) (*swiss.State, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	data, err := sst.objects.GetObject(ctx, objectKey(id))
	if err != nil {
		if errors.Is(err, s3store.ErrNotFound) {
			return nil, fmt.Errorf("%v: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("unable to read snapshot %v: %w", id, err)
	}

	return decode(id, data)
}

func (sst *S3Store) Save(ctx context.Context, id string, s *swiss.State) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	data, err := encode(s)
	if err != nil {
		return err
	}
	if err := sst.objects.PutObject(ctx, objectKey(id), data); err != nil {
		return fmt.Errorf("unable to save snapshot %v: %w", id, err)
	}
	return nil
}

func (sst *S3Store) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	if err := sst.objects.DeleteObject(ctx, objectKey(id)); err != nil {
		return fmt.Errorf("unable to delete snapshot %v: %w", id, err)
	}
	return nil
}

func (sst *S3Store) List(ctx context.Context) ([]string, error) {
	keys, err := sst.objects.ListObjects(ctx, s3Prefix)
	if err != nil {
		return nil, fmt.Errorf("unable to list snapshots: %w", err)
	}
	var ids []string
	for _, k := range keys {
		if strings.HasSuffix(k, snapshotExt) && !strings.Contains(k, "/") {
			ids = append(ids, strings.TrimSuffix(k, snapshotExt))
		}
	}
	sort.Strings(ids)

	return ids, nil
}
