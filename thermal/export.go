// Copyright 2026 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package thermal

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteMapCSV writes m as CSV, one line per entry in map order.
//
// Columns are RowIndex, Temperature, R, G, B with two decimals.
func WriteMapCSV(w io.Writer, m ColorTemperatureMap) error {
	c := csv.NewWriter(w)
	if err := c.Write([]string{"RowIndex", "Temperature", "R", "G", "B"}); err != nil {
		return err
	}
	for i, s := range m {
		line := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(s.Temperature, 'f', 2, 64),
			strconv.FormatFloat(s.Color.R, 'f', 2, 64),
			strconv.FormatFloat(s.Color.G, 'f', 2, 64),
			strconv.FormatFloat(s.Color.B, 'f', 2, 64),
		}
		if err := c.Write(line); err != nil {
			return err
		}
	}
	c.Flush()
	return c.Error()
}
