package config

import "path/filepath"

type Config struct {
	DataPath string
}

var globalConfig = &Config{
	DataPath: "radio_feeds/",
}

func GetConfig() *Config {
	return globalConfig
}

func SetConfig(c *Config) {
	globalConfig = c
}

func GetFeedPath() string {
	return filepath.Join(globalConfig.DataPath, "radio_stations.xml")
}

func GetCatalogPath() string {
	return filepath.Join(globalConfig.DataPath, "catalog.sqlite")
}

func GetScraperExportDir() string {
	return filepath.Join(globalConfig.DataPath, "scraper/")
}
