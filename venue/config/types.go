package config

// VenueConfig represents the complete configuration of a virtual venue
type VenueConfig struct {
	Metadata    Metadata    `yaml:"metadata"`
	Venue       Venue       `yaml:"venue"`
	Source      Source      `yaml:"source"`
	Orientation Orientation `yaml:"orientation"`
	Attenuation Attenuation `yaml:"attenuation"`
	Session     Session     `yaml:"session"`
	Speakers    Speakers    `yaml:"speakers"`
	Playback    Playback    `yaml:"playback"`
}

type Metadata struct {
	Timestamp string `yaml:"timestamp"` // YYYY-MM-DD HH:MM:SS in UTC
	GitCommit string `yaml:"git_commit"`
}

type Venue struct {
	Rows            []int      `yaml:"rows"`             // seats per row, front row first
	FocalPoint      [3]float64 `yaml:"focal_point"`      // meters
	BaseRadius      float64    `yaml:"base_radius"`      // meters
	RadiusIncrement float64    `yaml:"radius_increment"` // meters per row
	BaseHeight      float64    `yaml:"base_height"`      // meters
	HeightIncrement float64    `yaml:"height_increment"` // meters per row
	AngularSpanDeg  float64    `yaml:"angular_span_deg"`
}

type Source struct {
	Position [3]float64 `yaml:"position"`
	Height   float64    `yaml:"height"`
}

type Orientation struct {
	Sensitivity float64 `yaml:"sensitivity"` // radians per pointer unit
	Smoothing   float64 `yaml:"smoothing"`   // fraction per tick
	YawLimitDeg float64 `yaml:"yaw_limit_deg"`
	PitchMinDeg float64 `yaml:"pitch_min_deg"` // negative, looking down
	PitchMaxDeg float64 `yaml:"pitch_max_deg"`
	EyeHeight   float64 `yaml:"eye_height"` // meters above the seat
}

type Attenuation struct {
	MinDistance    float64             `yaml:"min_distance"`
	MaxDistance    float64             `yaml:"max_distance"`
	Floor          float64             `yaml:"floor"`
	AngleBudgetDeg float64             `yaml:"angle_budget_deg"`
	MenuGain       float64             `yaml:"menu_gain"`
	AngleCurve     map[float64]float64 `yaml:"angle_curve,omitempty"` // degrees -> gain
}

type Session struct {
	TickHz      float64 `yaml:"tick_hz"`
	InitialSeat int     `yaml:"initial_seat,omitempty"` // 0 leaves the viewer unseated
}

type Speakers struct {
	Inline   []Speaker `yaml:"inline,omitempty"`
	FromFile string    `yaml:"from_file,omitempty"`
}

type Speaker struct {
	ID       string     `yaml:"id" json:"id"`
	Name     string     `yaml:"name" json:"name"`
	Position [3]float64 `yaml:"position" json:"position"`
	Volume   float64    `yaml:"volume" json:"volume"`
	Speaking bool       `yaml:"speaking" json:"speaking"`
}

type Playback struct {
	Audio string `yaml:"audio,omitempty"` // wav or mp3 played as the broadcast
}
