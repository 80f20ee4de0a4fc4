// Package grid evaluates a stress calculator over a regular
// latitude/longitude/time lattice.
package grid

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/san-kum/tidestress/internal/stress"
)

// ErrBadRange indicates an empty or inverted grid dimension.
var ErrBadRange = errors.New("grid: bad dimension range")

// Grid is the temporal and geographic range and resolution of a gridded
// calculation. Latitude and longitude are degrees (north and east
// positive); time is seconds past pericenter. Min and max are inclusive.
type Grid struct {
	Name   string
	LatMin float64
	LatMax float64
	LatNum int
	LonMin float64
	LonMax float64
	LonNum int

	TimeMin float64
	TimeMax float64
	TimeNum int
}

func (g Grid) Validate() error {
	check := func(name string, min, max float64, num int) error {
		if num < 1 {
			return fmt.Errorf("%w: %s_num = %d", ErrBadRange, name, num)
		}
		if max < min {
			return fmt.Errorf("%w: %s [%g, %g]", ErrBadRange, name, min, max)
		}
		return nil
	}
	if err := check("lat", g.LatMin, g.LatMax, g.LatNum); err != nil {
		return err
	}
	if err := check("lon", g.LonMin, g.LonMax, g.LonNum); err != nil {
		return err
	}
	return check("time", g.TimeMin, g.TimeMax, g.TimeNum)
}

// Size is the total number of grid points.
func (g Grid) Size() int { return g.LatNum * g.LonNum * g.TimeNum }

func axisValue(min, max float64, num, i int) float64 {
	if num == 1 {
		return min
	}
	return min + (max-min)*float64(i)/float64(num-1)
}

// Point is one evaluated grid node.
type Point struct {
	Lat  float64 // degrees, north positive
	Lon  float64 // degrees, east positive
	Time float64 // seconds past pericenter

	Tensor    stress.Tensor
	Principal stress.Principal
}

// Result is a completed gridded calculation. Points are in row-major
// (time, lat, lon) order, so output is deterministic regardless of how
// many workers evaluated it.
type Result struct {
	Grid   Grid
	Points []Point
}

// Eval runs the calculator over every grid node. workers <= 0 means
// GOMAXPROCS. Work is sheeted out per time slice; tensor evaluation is
// pure, so workers share the calculator freely.
func Eval(ctx context.Context, calc *stress.Calculator, g Grid, workers int) (*Result, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	res := &Result{Grid: g, Points: make([]Point, g.Size())}
	sliceSize := g.LatNum * g.LonNum

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ti := range jobs {
				evalSlice(calc, g, ti, res.Points[ti*sliceSize:(ti+1)*sliceSize])
			}
		}()
	}

	var err error
feed:
	for ti := 0; ti < g.TimeNum; ti++ {
		select {
		case jobs <- ti:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return res, nil
}

func evalSlice(calc *stress.Calculator, g Grid, ti int, out []Point) {
	t := axisValue(g.TimeMin, g.TimeMax, g.TimeNum, ti)
	i := 0
	for li := 0; li < g.LatNum; li++ {
		lat := axisValue(g.LatMin, g.LatMax, g.LatNum, li)
		theta := (90 - lat) * math.Pi / 180
		for gi := 0; gi < g.LonNum; gi++ {
			lon := axisValue(g.LonMin, g.LonMax, g.LonNum, gi)
			phi := lon * math.Pi / 180

			tau := calc.Tensor(theta, phi, t)
			out[i] = Point{
				Lat: lat, Lon: lon, Time: t,
				Tensor:    tau,
				Principal: tau.Principal(),
			}
			i++
		}
	}
}
