package config

// HostConfig holds per-host overrides for crawl behavior.
// Keys in the config file are bare hostnames (e.g., "example.com").
type HostConfig struct {
	// UserAgent overrides the global User-Agent for this host.
	UserAgent string `yaml:"userAgent,omitempty"`

	// MaxPages overrides the global page budget for this host.
	// If zero, the global MaxPages is used.
	MaxPages int `yaml:"maxPages,omitempty"`

	// DelaySeconds overrides the politeness delay for this host,
	// in whole seconds. If zero, the global delay is used.
	DelaySeconds int `yaml:"delaySeconds,omitempty"`

	// Headers are custom HTTP headers to include in requests to this
	// host. Only honored by the static fetcher.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Static forces the plain HTTP fetcher for this host even when the
	// crawl otherwise uses the browser fetcher. Useful for hosts known
	// to serve complete HTML without script.
	Static bool `yaml:"static,omitempty"`
}

// File represents the structure of the .linktrail.yaml configuration file.
type File struct {
	// Hosts maps hostnames to their per-host overrides.
	Hosts map[string]HostConfig `yaml:"hosts,omitempty"`

	// Defaults contains overrides applied to all hosts unless the
	// host-specific entry overrides them again.
	Defaults HostConfig `yaml:"defaults,omitempty"`
}

// GetHostConfig returns the effective configuration for a hostname.
// It merges the host-specific entry over the file defaults.
func (cf *File) GetHostConfig(host string) HostConfig {
	// Start with defaults. The struct copy shares the Headers map, so
	// the result always gets its own map: writing host headers into the
	// shared defaults map would leak them to every later lookup.
	result := cf.Defaults
	result.Headers = nil
	if len(cf.Defaults.Headers) > 0 {
		result.Headers = make(map[string]string, len(cf.Defaults.Headers))
		for k, v := range cf.Defaults.Headers {
			result.Headers[k] = v
		}
	}

	// Override with host-specific configuration if present
	if hc, ok := cf.Hosts[host]; ok {
		if hc.UserAgent != "" {
			result.UserAgent = hc.UserAgent
		}
		if hc.MaxPages != 0 {
			result.MaxPages = hc.MaxPages
		}
		if hc.DelaySeconds != 0 {
			result.DelaySeconds = hc.DelaySeconds
		}
		if len(hc.Headers) > 0 {
			if result.Headers == nil {
				result.Headers = make(map[string]string, len(hc.Headers))
			}
			for k, v := range hc.Headers {
				result.Headers[k] = v
			}
		}
		if hc.Static {
			result.Static = true
		}
	}

	return result
}
