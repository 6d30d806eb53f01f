package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagSaveConfig = flag.String("save-config", "", "Write the effective config to this path")
	flagOut        = flag.String("out", "", "Output image path (.png, .bmp, .tga, .jpg)")
	flagWidth      = flag.Int("width", 0, "Output width in pixels")
	flagHeight     = flag.Int("height", 0, "Output height in pixels")
	flagTexture    = flag.String("texture", "", "Texture image (overrides embedded textures)")
	flagMode       = flag.String("mode", "", "Render mode: textured, flat or wireframe")
	flagZBuffer    = flag.String("zbuffer", "", "Z-buffer mode: shared or per_group")
	flagFrames     = flag.Int("frames", -1, "Turntable frame count (0 renders a still)")
	flagPreview    = flag.Bool("preview", false, "Show the result in the terminal")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveConfigPath returns the --save-config destination, if any.
func SaveConfigPath() string {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config. The first
// positional argument is the model path.
func applyFlags(cfg *Config) {
	if flag.NArg() > 0 {
		cfg.Model.Path = flag.Arg(0)
	}
	if *flagOut != "" {
		cfg.Output.Path = *flagOut
	}
	if *flagWidth > 0 {
		cfg.Output.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Output.Height = *flagHeight
	}
	if *flagTexture != "" {
		cfg.Model.Texture = *flagTexture
	}
	if *flagMode != "" {
		cfg.Render.Mode = *flagMode
	}
	if *flagZBuffer != "" {
		cfg.Model.ZBuffer = *flagZBuffer
	}
	if *flagFrames >= 0 {
		cfg.Turntable.Frames = *flagFrames
	}
	if *flagPreview {
		cfg.Preview = true
	}
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
}
