package configs

import (
	"errors"
	"fmt"
	"go_fast_split/constants"
	"go_fast_split/fileio"
	"go_fast_split/progress"
	"os"

	"github.com/joho/godotenv"
)

// Environment keys read by Load.
const (
	EnvBufferSize    = "SPLIT_BUFFER_SIZE"
	EnvWriteBuffer   = "SPLIT_WRITE_BUFFER"
	EnvChecksum      = "SPLIT_CHECKSUM"
	EnvGenerationLog = "SPLIT_GENERATION_LOG"
)

// Config holds defaults that command-line flags may override
type Config struct {
	BufferSize    int
	WriteBuffer   int
	Checksum      fileio.HashKind
	GenerationLog string
}

// Default returns built-in defaults
func Default() Config {
	return Config{
		BufferSize:  constants.DEFAULT_BUFFER_SIZE,
		WriteBuffer: constants.DEFAULT_WRITE_BUFFER,
		Checksum:    fileio.HashCRC32,
	}
}

// Load reads defaults from the optional env file at path, with process
// environment taking precedence over the file.
func Load(path string) (Config, error) {
	values := map[string]string{}
	if path != "" {
		file, err := godotenv.Read(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
		for k, v := range file {
			values[k] = v
		}
	}
	for _, k := range []string{EnvBufferSize, EnvWriteBuffer, EnvChecksum, EnvGenerationLog} {
		if v, ok := os.LookupEnv(k); ok {
			values[k] = v
		}
	}
	return parse(values)
}

func parse(values map[string]string) (Config, error) {
	cfg := Default()
	if v, ok := values[EnvBufferSize]; ok {
		n, err := sizeValue(EnvBufferSize, v)
		if err != nil {
			return Config{}, err
		}
		cfg.BufferSize = n
	}
	if v, ok := values[EnvWriteBuffer]; ok {
		n, err := sizeValue(EnvWriteBuffer, v)
		if err != nil {
			return Config{}, err
		}
		cfg.WriteBuffer = n
	}
	if v, ok := values[EnvChecksum]; ok {
		kind, err := fileio.ParseHashKind(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvChecksum, err)
		}
		cfg.Checksum = kind
	}
	cfg.GenerationLog = values[EnvGenerationLog]
	return cfg, nil
}

func sizeValue(key, v string) (int, error) {
	n, err := progress.ParseSize(v)
	if err != nil || n < constants.BUFFER_UNIT {
		return 0, fmt.Errorf("%s: %q must be a size of at least %d bytes", key, v, constants.BUFFER_UNIT)
	}
	return int(n), nil
}
