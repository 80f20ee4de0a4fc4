package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/tidestress/internal/grid"
)

// WriteCSV renders a result as one row per grid point: position, time,
// tensor components, and the principal decomposition.
func WriteCSV(w io.Writer, res *grid.Result) error {
	cw := csv.NewWriter(w)
	header := []string{
		"time_s", "lat_deg", "lon_deg",
		"Ttt_Pa", "Tpt_Pa", "Tpp_Pa",
		"sigma_max_Pa", "sigma_min_Pa", "azimuth_rad",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for _, p := range res.Points {
		for i, v := range []float64{
			p.Time, p.Lat, p.Lon,
			p.Tensor.Ttt, p.Tensor.Tpt, p.Tensor.Tpp,
			p.Principal.Max, p.Principal.Min, p.Principal.Azimuth,
		} {
			row[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON renders a result as indented JSON.
func WriteJSON(w io.Writer, res *grid.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
