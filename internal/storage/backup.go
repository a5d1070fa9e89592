package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Backup copies the database file to object storage.
type Backup struct {
	store  Service
	opts   UploadOptions
	logger *logrus.Logger
	now    func() time.Time
}

func NewBackup(store Service, opts UploadOptions, logger *logrus.Logger) *Backup {
	return &Backup{
		store:  store,
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// Run uploads dbPath as <base>-<UTC timestamp><ext>. The caller must make
// sure no writes are in flight.
func (b *Backup) Run(ctx context.Context, dbPath string) (string, error) {
	f, err := os.Open(dbPath)
	if err != nil {
		return "", fmt.Errorf("open database file: %w", err)
	}
	defer f.Close()

	base := filepath.Base(dbPath)
	ext := filepath.Ext(base)
	name := fmt.Sprintf("%s-%s%s", strings.TrimSuffix(base, ext), b.now().UTC().Format("20060102T150405Z"), ext)

	location, err := b.store.Upload(ctx, name, f, b.opts)
	if err != nil {
		return "", err
	}
	b.logger.WithField("location", location).Info("database backup uploaded")
	return location, nil
}
