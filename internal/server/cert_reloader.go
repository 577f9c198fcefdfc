package server

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"resumelens/internal/errors"

	"github.com/fsnotify/fsnotify"
)

// CertReloader watches the server certificate files and atomically swaps
// in new key pairs when they change, so certificate rotation never
// requires a restart.
type CertReloader struct {
	mu sync.RWMutex

	certFile string
	keyFile  string

	cert *tls.Certificate

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	reloadCallback func(success bool, err error)
	logger         *errors.Logger

	running bool
}

// NewCertReloader creates a reloader for the given certificate files
func NewCertReloader(certFile, keyFile string, debounceDelay time.Duration, logger *errors.Logger) (*CertReloader, error) {
	if certFile == "" || keyFile == "" {
		return nil, fmt.Errorf("certificate and key files are required for auto-reload")
	}
	if debounceDelay == 0 {
		debounceDelay = time.Second
	}

	cr := &CertReloader{
		certFile:      certFile,
		keyFile:       keyFile,
		debounceDelay: debounceDelay,
		stopChan:      make(chan struct{}),
		reloadChan:    make(chan struct{}, 1), // Buffered to prevent blocking
		logger:        logger,
	}

	// Load the initial certificate before watching
	if err := cr.reload(); err != nil {
		return nil, err
	}

	return cr, nil
}

// SetReloadCallback registers a callback invoked after every reload attempt
func (cr *CertReloader) SetReloadCallback(cb func(success bool, err error)) {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	cr.reloadCallback = cb
}

// Start begins watching the certificate files for changes
func (cr *CertReloader) Start() error {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if cr.running {
		return fmt.Errorf("certificate reloader is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	cr.fsWatcher = watcher

	for _, file := range []string{cr.certFile, cr.keyFile} {
		if err := cr.watchFile(file); err != nil {
			if closeErr := watcher.Close(); closeErr != nil && cr.logger != nil {
				cr.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
			}
			return err
		}
	}

	cr.running = true
	go cr.watchLoop()

	if cr.logger != nil {
		cr.logger.Info("Certificate reloader started",
			"cert_file", cr.certFile,
			"key_file", cr.keyFile,
			"debounce_delay", cr.debounceDelay)
	}

	return nil
}

// watchFile adds a file and its directory to the watcher. The directory is
// watched too so atomic writes (rename operations) are caught.
func (cr *CertReloader) watchFile(file string) error {
	if err := cr.fsWatcher.Add(file); err != nil {
		return fmt.Errorf("failed to watch file %s: %w", file, err)
	}

	dir := filepath.Dir(file)
	if err := cr.fsWatcher.Add(dir); err != nil && cr.logger != nil {
		cr.logger.Warn("Failed to watch directory for atomic writes",
			"directory", dir, "error", err)
	}

	return nil
}

// Stop stops the certificate reloader
func (cr *CertReloader) Stop() error {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if !cr.running {
		return nil
	}

	close(cr.stopChan)

	if cr.debounceTimer != nil {
		cr.debounceTimer.Stop()
	}

	if cr.fsWatcher != nil {
		if err := cr.fsWatcher.Close(); err != nil {
			if cr.logger != nil {
				cr.logger.LogError(err, "Failed to close file system watcher")
			}
			return err
		}
	}

	cr.running = false

	if cr.logger != nil {
		cr.logger.Info("Certificate reloader stopped")
	}

	return nil
}

// GetCertificate returns the current certificate for a TLS handshake
func (cr *CertReloader) GetCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	if cr.cert == nil {
		return nil, fmt.Errorf("no certificate loaded")
	}
	return cr.cert, nil
}

// CheckExpiry returns the time remaining until the current certificate expires
func (cr *CertReloader) CheckExpiry() (time.Duration, error) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	if cr.cert == nil || len(cr.cert.Certificate) == 0 {
		return 0, fmt.Errorf("no certificate loaded")
	}

	leaf, err := x509.ParseCertificate(cr.cert.Certificate[0])
	if err != nil {
		return 0, fmt.Errorf("failed to parse certificate: %w", err)
	}

	return time.Until(leaf.NotAfter), nil
}

// IsRunning returns whether the reloader is currently watching
func (cr *CertReloader) IsRunning() bool {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	return cr.running
}

// reload loads the key pair from disk and swaps it in
func (cr *CertReloader) reload() error {
	cert, err := tls.LoadX509KeyPair(cr.certFile, cr.keyFile)
	if err != nil {
		return fmt.Errorf("failed to load server cert/key: %w", err)
	}

	cr.mu.Lock()
	cr.cert = &cert
	cr.mu.Unlock()

	return nil
}

// watchLoop is the main event loop for file watching
func (cr *CertReloader) watchLoop() {
	for {
		select {
		case event, ok := <-cr.fsWatcher.Events:
			if !ok {
				return
			}

			if cr.shouldProcessEvent(event) {
				cr.scheduleReload()
			}

		case err, ok := <-cr.fsWatcher.Errors:
			if !ok {
				return
			}
			if cr.logger != nil {
				cr.logger.LogError(err, "File watcher error")
			}

		case <-cr.reloadChan:
			// Debounced reload trigger
			err := cr.reload()
			if cr.logger != nil {
				if err != nil {
					cr.logger.LogError(err, "Certificate reload failed, keeping previous certificate")
				} else {
					cr.logger.Info("Certificate files changed, reloaded key pair")
				}
			}

			cr.mu.RLock()
			cb := cr.reloadCallback
			cr.mu.RUnlock()
			if cb != nil {
				cb(err == nil, err)
			}

		case <-cr.stopChan:
			return
		}
	}
}

// shouldProcessEvent determines if a file system event should trigger a reload
func (cr *CertReloader) shouldProcessEvent(event fsnotify.Event) bool {
	isWatchedFile := false
	for _, file := range []string{cr.certFile, cr.keyFile} {
		if event.Name == file || filepath.Base(event.Name) == filepath.Base(file) {
			isWatchedFile = true
			break
		}
	}

	if !isWatchedFile {
		return false
	}

	// Process write, create, and rename events
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// scheduleReload schedules a debounced reload
func (cr *CertReloader) scheduleReload() {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if cr.debounceTimer != nil {
		cr.debounceTimer.Stop()
	}

	cr.debounceTimer = time.AfterFunc(cr.debounceDelay, func() {
		select {
		case cr.reloadChan <- struct{}{}:
		default:
			// Reload already scheduled
		}
	})
}

// certFilesExist reports whether both certificate files are present on disk
func certFilesExist(certFile, keyFile string) bool {
	if certFile == "" || keyFile == "" {
		return false
	}
	for _, file := range []string{certFile, keyFile} {
		if _, err := os.Stat(file); err != nil {
			return false
		}
	}
	return true
}
