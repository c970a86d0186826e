// Copyright 2025 Vitor Carvalho. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/lightningspirit/wp-redirects/blob/master/LICENSE.txt.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "WP_REDIRECTS_"

// Config is the effective tool configuration, merged from defaults, an
// optional TOML file and WP_REDIRECTS_* environment variables, in that order.
type Config struct {
	// Rules is the path of the JSON rule collection file.
	Rules string `koanf:"rules"`
	// Listen is the address the serve command binds to.
	Listen string `koanf:"listen"`
	// Token protects the administrative endpoint when non-empty.
	Token string `koanf:"token"`
	// RealIPHeader names a single-IP header set by a trusted reverse proxy,
	// such as X-Real-IP or CF-Connecting-IP. Access logs fall back to the
	// socket address when empty.
	RealIPHeader string `koanf:"real_ip_header"`
	// TrustedProxies is the number of reverse proxies appending to
	// X-Forwarded-For in front of the server. Ignored when RealIPHeader is set.
	TrustedProxies int `koanf:"trusted_proxies"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"rules":           filepath.Join(xdg.DataHome, "wp-redirects", "rules.json"),
		"listen":          ":8080",
		"token":           "",
		"real_ip_header":  "",
		"trusted_proxies": 0,
	}
}

// loadConfig merges the configuration sources. An explicitly requested config
// file must exist; the default location is skipped silently when absent.
func loadConfig(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("loading default config: %w", err)
	}

	if path == "" {
		fallback := filepath.Join(xdg.ConfigHome, "wp-redirects", "config.toml")
		if _, err := os.Stat(fallback); err == nil {
			path = fallback
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return Config{}, fmt.Errorf("loading config %s: %w", path, err)
		}
	}

	// Double underscores nest: WP_REDIRECTS_REAL_IP_HEADER stays a flat key
	// while WP_REDIRECTS_FOO__BAR would become foo.bar.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}
