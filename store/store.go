/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/mikeb26/bcc-swiss/s3store"
	"github.com/mikeb26/bcc-swiss/swiss"
)

var (
	ErrNotFound  = errors.New("tournament snapshot not found")
	ErrInvalidID = errors.New("invalid tournament id")
)

// Store persists tournament snapshots by id.
type Store interface {
	Load(ctx context.Context, id string) (*swiss.State, error)
	Save(ctx context.Context, id string, s *swiss.State) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]string, error)
}

var validID = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateID rejects ids that cannot be used as a file or object name.
func ValidateID(id string) error {
	if !validID.MatchString(id) {
		return fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	return nil
}

func encode(s *swiss.State) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("unable to encode snapshot: %w", err)
	}
	return data, nil
}

func decode(id string, data []byte) (*swiss.State, error) {
	var s swiss.State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unable to decode snapshot %v: %w", id, err)
	}
	return &s, nil
}

// Open returns an S3Store when bucket is set and a FileStore over dir
// otherwise.
func Open(ctx context.Context, dir string, bucket string,
	log zerolog.Logger) (Store, error) {

	if bucket == "" {
		log.Debug().Str("dir", dir).Msg("store.open: using file store")
		return NewFileStore(dir)
	}
	objects := s3store.New(ctx, bucket, false, log)
	if err := objects.Init(); err != nil {
		return nil, fmt.Errorf("unable to open snapshot bucket: %w", err)
	}
	log.Debug().Str("bucket", bucket).Msg("store.open: using s3 store")

	return NewS3Store(objects), nil
}
