// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"log"
	"os"
	"os/user"
	"path/filepath"
)

// config is ~/.config/thermal/thermal.json. Flags default to its values.
type config struct {
	MinTemp  float64 // Bottom of the camera scale bar.
	MaxTemp  float64 // Top of the camera scale bar.
	Interval string  // Sampling interval, e.g. "5s".
	Points   string  // Points file.
	Want     int     // Expected number of points: 5 for the multi-point workflow, 1 for a single point, 0 for any.
	CSV      string
	Photos   string // Directory where sampled frames are archived; empty to disable.
	Device   int    // Video device index.
	Port     int    // Plot feed port; 0 to disable.
}

func defaultConfig() config {
	return config{
		Interval: "5s",
		Points:   "points.txt",
		Want:     5,
		CSV:      "photo_temperature_data.csv",
		Photos:   "photos",
		Device:   1,
		Port:     8010,
	}
}

func configPath() (string, string) {
	usr, _ := user.Current()
	configDir := filepath.Join(usr.HomeDir, ".config", "thermal")
	return configDir, filepath.Join(configDir, "thermal.json")
}

// loadConfig loads ~/.config/thermal/thermal.json or create one if none exists.
func loadConfig() config {
	configDir, configPath := configPath()
	c := defaultConfig()
	var srcData []byte
	if f, err := os.Open(configPath); err == nil {
		srcData, _ = ioutil.ReadAll(f)
		if err := json.Unmarshal(srcData, &c); err != nil {
			log.Printf("%s is invalid json: %s", configPath, err)
		}
		f.Close()
	}

	// Normalizes the config file.
	data := c.marshal()
	if !bytes.Equal(srcData, data) {
		if err := os.MkdirAll(configDir, 0700); err != nil {
			log.Printf("failed to create %s: %s", configDir, err)
			return c
		}
		if err := ioutil.WriteFile(configPath, data, 0600); err != nil {
			log.Printf("failed to write %s: %s", configPath, err)
		}
	}
	return c
}

// write saves c, as modified by the flags.
func (c *config) write() error {
	configDir, configPath := configPath()
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}
	return ioutil.WriteFile(configPath, c.marshal(), 0600)
}

func (c *config) marshal() []byte {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		panic(err)
	}
	return append(data, '\n')
}
