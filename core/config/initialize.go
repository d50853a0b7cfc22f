package config

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const privateKeyBits = 2048

// Initialize writes a default configuration, the session log directory and
// a host key into dir. Existing files are kept.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return InitializeFs(afero.NewBasePathFs(afero.NewOsFs(), dir), logger)
}

// InitializeFs is like Initialize but writes into the root of configFs.
func InitializeFs(configFs afero.Fs, logger *log.Logger) (*Configuration, error) {
	if err := writeIfMissing(configFs, ConfigurationName, logger, func() ([]byte, error) {
		return defaultConfigData, nil
	}); err != nil {
		return nil, err
	}

	if err := configFs.MkdirAll(LogsDirName, 0700); err != nil {
		return nil, err
	}
	logger.Printf("Session logs will be written to %s\n", LogsDirName+string(filepath.Separator))

	if err := writeIfMissing(configFs, PrivateKeyName, logger, generatePrivateKey); err != nil {
		return nil, err
	}

	return LoadFs(configFs)
}

func writeIfMissing(configFs afero.Fs, name string, logger *log.Logger, contents func() ([]byte, error)) error {
	exists, err := afero.Exists(configFs, name)
	switch {
	case err != nil:
		return err
	case exists:
		logger.Printf("Keeping existing %s\n", name)
		return nil
	}

	data, err := contents()
	if err != nil {
		return err
	}
	logger.Printf("Writing %s\n", name)
	return afero.WriteFile(configFs, name, data, 0600)
}

func generatePrivateKey() ([]byte, error) {
	key, err := rsa.GenerateKey(rand.Reader, privateKeyBits)
	if err != nil {
		return nil, err
	}

	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}), nil
}
