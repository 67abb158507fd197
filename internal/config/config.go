package config

import "time"

const (
	// Logarithmic gauge
	ScaleMinMeters  = 1.0   // Nearest distance on the scale
	ScaleMaxMeters  = 80.0  // Farthest distance on the scale
	ScaleTopOffset  = 95.0  // Points between the origin edge and the 1 m mark
	AxisInset       = 50.0  // Points between the right edge and the scale axis
	OriginOffset    = 50.0  // Points between the origin edge and the origin button center
	PortraitInset   = 80.0  // Far-end inset in portrait orientation
	LandscapeInset  = 40.0  // Far-end inset in landscape orientation
	LabelInset      = 80.0  // Points between the right edge and distance labels
	CellWidthPts    = 8.0   // Gauge points per terminal column
	CellHeightPts   = 16.0  // Gauge points per terminal row
	TargetFPS       = 10    // Target frames per second
	BeaconCapacity  = 20    // Readings kept for the gauge
	DuplicateRadius = 15.0  // Minimum separation between pinned boxes, meters

	// RSSI to distance estimation
	MeasuredPower = -59.0 // RSSI at 1 meter (dBm) when the beacon advertises none
	PathLossExp   = 2.0   // Path loss exponent (N), free space indoors

	// Beacon management
	BeaconTimeout  = 15 * time.Second // Drop beacons not seen for this long
	EvictInterval  = 3 * time.Second  // How often to run eviction
	SmoothingAlpha = 0.3              // EMA smoothing factor (30% new, 70% old)
	HistoryLength  = 60               // RSSI samples kept per beacon for the sparkline

	// Demo mode
	DemoBeaconMin = 4 // Minimum fake beacons
	DemoBeaconMax = 7 // Maximum fake beacons

	// App
	AppName    = "LIBRARYBOX"
	AppVersion = "1.0"

	// DefaultRangeLogFile receives logs while the terminal UI owns stdout.
	DefaultRangeLogFile = "librarybox.log"
)
