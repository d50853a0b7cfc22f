package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	gossh "golang.org/x/crypto/ssh"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	LogsDirName       = "session_logs"
	PrivateKeyName    = "private_key"
	AppLogName        = "app.log"
)

// Tokenizer names accepted by ShellConfig.Tokenizer.
const (
	TokenizerWhitespace = "whitespace"
	TokenizerShlex      = "shlex"
)

type Configuration struct {
	configFs afero.Fs

	Shell ShellConfig `json:"shell"`
	Serve ServeConfig `json:"serve"`
}

// ShellConfig holds the line discipline shared by every shell.
type ShellConfig struct {
	BufferSize    int    `json:"buffer_size" validate:"gte=2,lte=4096"`
	MaxArgs       int    `json:"max_args" validate:"gte=1"`
	DocDelimiter  string `json:"doc_delimiter" validate:"len=1,ascii"`
	AltTerminator string `json:"alt_terminator" validate:"max=1,ascii"`
	Tokenizer     string `json:"tokenizer" validate:"oneof=whitespace shlex"`
	Color         bool   `json:"color"`
}

// ServeConfig holds settings for shells served over SSH.
type ServeConfig struct {
	SSHPort        int      `json:"ssh_port" validate:"gte=0,lte=65535"`
	SSHBanner      string   `json:"ssh_banner"`
	Passwords      []string `json:"passwords" validate:"unique"`
	BaudRate       int      `json:"baud_rate" validate:"gte=0"`
	PollIntervalMs int      `json:"poll_interval_ms" validate:"gte=1"`
	RecordSessions bool     `json:"record_sessions"`
}

// PollInterval returns how long idle shells sleep between polls.
func (s *ServeConfig) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalMs) * time.Millisecond
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	return c.configFs
}

// CreateSessionLog creates a TTY log with the given name.
func (c *Configuration) CreateSessionLog(name string) (afero.File, error) {
	toCreate := filepath.Join(LogsDirName, name)
	return c.fs().Create(toCreate)
}

// OpenSessionLog opens a TTY log for reading. Absolute paths and paths
// relative to the working directory are tried before the session log
// directory.
func (c *Configuration) OpenSessionLog(name string) (afero.File, error) {
	if fd, err := afero.NewOsFs().Open(name); err == nil {
		return fd, nil
	}
	return c.fs().Open(filepath.Join(LogsDirName, filepath.Base(name)))
}

// ListSessionLogs lists the recorded TTY logs.
func (c *Configuration) ListSessionLogs() ([]os.FileInfo, error) {
	return afero.ReadDir(c.fs(), LogsDirName)
}

// PrivateKeyPem returns the bytes of the private key.
func (c *Configuration) PrivateKeyPem() ([]byte, error) {
	return afero.ReadFile(c.fs(), PrivateKeyName)
}

// HostSigner parses the private key for use as an SSH host key.
func (c *Configuration) HostSigner() (gossh.Signer, error) {
	pem, err := c.PrivateKeyPem()
	if err != nil {
		return nil, err
	}
	return gossh.ParsePrivateKey(pem)
}

// OpenAppLog opens the application log in an append only state.
func (c *Configuration) OpenAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func (c *Configuration) ReadAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_RDONLY, 0600)
}

// DocDelimiterByte returns the documentation delimiter as a byte.
func (s *ShellConfig) DocDelimiterByte() byte {
	return s.DocDelimiter[0]
}

// AltTerminatorByte returns the alternate line terminator, 0 if disabled.
func (s *ShellConfig) AltTerminatorByte() byte {
	if s.AltTerminator == "" {
		return 0
	}
	return s.AltTerminator[0]
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// Default returns the built-in configuration backed by an in-memory
// filesystem. It's useful for running shells without a config directory.
func Default() *Configuration {
	cfg := defaultConfig()
	cfg.configFs = afero.NewMemMapFs()
	return cfg
}
