package loaders

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// ErrUnknownScene is returned when a name matches no built-in scene or file
var ErrUnknownScene = errors.New("unknown scene")

// CreateScene builds a built-in scene by name or loads a JSON description,
// either by path or by file name (without extension) from sceneDir.
// seed only affects the random scene.
func CreateScene(name, sceneDir string, seed int64) (*scene.Scene, error) {
	switch name {
	case "":
		return nil, fmt.Errorf("%w: no scene given", ErrUnknownScene)
	case "default":
		return scene.NewDefaultScene(), nil
	case "random":
		return scene.NewRandomScene(seed), nil
	case "spheregrid":
		return scene.NewSphereGridScene(), nil
	}

	if strings.EqualFold(filepath.Ext(name), ".json") {
		return LoadScene(name)
	}

	path := filepath.Join(sceneDir, name+".json")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return LoadScene(path)
}
