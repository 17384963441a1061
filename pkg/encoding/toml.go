package encoding

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// LoadAndUnmarshalTOML loads data from the specified path and decodes it into
// the specified structure.
func LoadAndUnmarshalTOML(path string, value interface{}) error {
	return LoadAndUnmarshal(path, func(data []byte) error {
		return toml.Unmarshal(data, value)
	})
}

// UnmarshalTOML decodes raw TOML data into value.
func UnmarshalTOML(data []byte, value interface{}) error {
	return toml.Unmarshal(data, value)
}

// MarshalTOML encodes value to its TOML representation.
func MarshalTOML(value interface{}) ([]byte, error) {
	var buffer bytes.Buffer
	if err := toml.NewEncoder(&buffer).Encode(value); err != nil {
		return nil, fmt.Errorf("unable to encode TOML: %w", err)
	}
	return buffer.Bytes(), nil
}

// MarshalAndSaveTOML encodes value to TOML and saves it atomically to path.
func MarshalAndSaveTOML(path string, value interface{}) error {
	return MarshalAndSave(path, func() ([]byte, error) {
		return MarshalTOML(value)
	})
}
