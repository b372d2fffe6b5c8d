package renderer

import "time"

// RenderStats contains statistics about a rendered frame
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	HitPixels   int           // Pixels whose primary ray hit an object
	Rows        int           // Rows rendered
	Workers     int           // Goroutines used for the row loop
	Elapsed     time.Duration // Wall time of the render
}

// Coverage returns the fraction of pixels that hit an object
func (s RenderStats) Coverage() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}
