package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/phanxgames/scatter"
)

// sceneFile is the on-disk scene description. Each object is decoded over
// scatter.DefaultConfig, so omitted fields keep their defaults.
type sceneFile struct {
	Width   float64           `json:"width"`
	Height  float64           `json:"height"`
	Objects []json.RawMessage `json:"objects"`
}

// defaultScene is used when no scene file is given: three cards on an
// 800x600 stage.
var defaultScene = []byte(`{
	"width": 800, "height": 600,
	"objects": [
		{"name": "red",   "width": 200, "height": 140, "position": {"x": 220, "y": 200}, "maxScale": 3},
		{"name": "green", "width": 160, "height": 200, "position": {"x": 520, "y": 260}, "rotation": 0.3, "maxScale": 3},
		{"name": "blue",  "width": 240, "height": 120, "position": {"x": 400, "y": 450}, "maxScale": 3}
	]
}`)

func readScene() ([]byte, error) {
	if scenePath == "" {
		return defaultScene, nil
	}
	return os.ReadFile(scenePath)
}

// loadScene builds a stage from the --scene file or the default scene.
func loadScene(clock scatter.Clock) (*scatter.Stage, *sceneFile, error) {
	data, err := readScene()
	if err != nil {
		return nil, nil, fmt.Errorf("read scene: %w", err)
	}
	var sf sceneFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, nil, fmt.Errorf("parse scene: %w", err)
	}
	stage := scatter.NewStage(scatter.StageConfig{
		Bounds: scatter.Rect{Width: sf.Width, Height: sf.Height},
		Clock:  clock,
	})
	for i, raw := range sf.Objects {
		cfg := scatter.DefaultConfig()
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, nil, fmt.Errorf("parse scene object %d: %w", i, err)
		}
		if _, err := scatter.NewScatter(stage, cfg); err != nil {
			return nil, nil, err
		}
	}
	return stage, &sf, nil
}
