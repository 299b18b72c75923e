package mouseconfig

import (
	"github.com/go-viper/mapstructure/v2"
)

// AttributeMap is a generic bag of configuration values, the shape a CLI
// flag file or an inline scenario description hands us before it is
// resolved into a typed Config — grounded in rdk's
// `config.AttributeMap` / `utils.AttributeMap` decoding pattern.
type AttributeMap map[string]interface{}

// Decode converts a loosely-typed attribute map (snake_case keys matching
// option names) into a Config, then applies defaults.
func Decode(attrs AttributeMap) (*Config, error) {
	cfg := &Config{}
	decoderCfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           cfg,
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(decoderCfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(map[string]interface{}(attrs)); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return cfg, nil
}
