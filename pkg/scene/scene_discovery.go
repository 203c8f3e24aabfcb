package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownScene is returned when no builtin scene has the requested name
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a builtin scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
}

type builtinScene struct {
	info    SceneInfo
	factory func() (*Scene, error)
}

var builtinScenes = map[string]builtinScene{
	"default": {
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default",
			Description: "Diffuse sphere between two metal spheres on a diffuse ground",
		},
		factory: NewDefaultScene,
	},
	"metal-pair": {
		info: SceneInfo{
			ID:          "metal-pair",
			DisplayName: "Metal Pair",
			Description: "Two facing mirror spheres with deep inter-reflections",
		},
		factory: NewMetalPairScene,
	},
	"spheregrid": {
		info: SceneInfo{
			ID:          "spheregrid",
			DisplayName: "Sphere Grid",
			Description: "Grid of diffuse and metal spheres with varying hue",
		},
		factory: NewSphereGridScene,
	},
}

// Lookup builds a fresh instance of the named builtin scene.
// Names are matched case-insensitively.
func Lookup(name string) (*Scene, error) {
	entry, ok := builtinScenes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return entry.factory()
}

// List returns the builtin scenes sorted by ID
func List() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, entry := range builtinScenes {
		scenes = append(scenes, entry.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}
