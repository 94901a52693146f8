package storage

import (
	"fmt"
	"sync"

	"github.com/766ms/Glam-rent-v1/config"
)

// Manager owns the configured disks. Built once at boot and injected into
// whatever needs file storage.
type Manager struct {
	mu          sync.RWMutex
	disks       map[string]Disk
	defaultDisk string
}

// Connect boots the storage manager. The local disk is always available;
// the s3 disk is added only when S3_BUCKET is configured.
func Connect() *Manager {
	m := &Manager{
		disks:       map[string]Disk{"local": newLocalDisk()},
		defaultDisk: config.StorageDefault(),
	}

	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			fmt.Printf("storage/s3: %v (disk disabled)\n", err)
		} else {
			m.disks["s3"] = d
		}
	}

	if _, ok := m.disks[m.defaultDisk]; !ok {
		m.defaultDisk = "local"
	}

	return m
}

// Disk returns the default disk.
func (m *Manager) Disk() Disk { return m.Use(m.defaultDisk) }

// Use returns the named disk ("local" or "s3").
func (m *Manager) Use(name string) Disk {
	m.mu.RLock()
	d, ok := m.disks[name]
	m.mu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// Register plugs in a custom Disk implementation. Used by tests.
func (m *Manager) Register(name string, d Disk) {
	m.mu.Lock()
	m.disks[name] = d
	m.mu.Unlock()
}
