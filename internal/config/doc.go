// Package config manages user-level settings stored at ~/.pyboot/config.yaml.
// Flags on the new command default from these values, so a user who always
// wants hatch or git init can set it once instead of passing flags.
package config
