// Package config provides configuration loading, saving, and defaults for
// ga-extractor.
package config

// DefaultConfigDir is the default location for ga-extractor configuration.
const DefaultConfigDir = "~/.config/ga-extractor"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultDBName is the filename for the run-history SQLite database.
const DefaultDBName = "ga-extractor.db"

// DefaultReportFile is the default raw report filename for extract/transform.
const DefaultReportFile = "report.json"

// DefaultMetrics are the metric expressions fetched by extract when none
// are configured.
const DefaultMetrics = "ga:pageviews,ga:sessions"

// DefaultDimensions are the dimension names fetched by extract when none
// are configured.
const DefaultDimensions = "ga:pagePath,ga:browser,ga:operatingSystem,ga:deviceCategory,ga:browserSize,ga:language,ga:country"

// DefaultSamplingLevel is the report sampling level when none is configured.
const DefaultSamplingLevel = "DEFAULT"

// SamplingLevels are the sampling levels the Reporting API accepts.
var SamplingLevels = []string{"SAMPLING_UNSPECIFIED", "DEFAULT", "SMALL", "LARGE"}

// DefaultWebsiteID is the website identifier stamped on migrated records.
const DefaultWebsiteID = 1

// DefaultHostname is the hostname stamped on migrated sessions.
const DefaultHostname = "localhost"
