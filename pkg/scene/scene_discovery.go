package scene

import (
	"fmt"
	"sort"
	"strings"
)

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, used on the command line
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Short description
	Group       string `json:"group"`       // Grouping category
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

type builtinScene struct {
	description string
	group       string
	create      func() *Scene
}

var builtinScenes = map[string]builtinScene{
	"default": {
		description: "Matte sphere between fuzzy gold and silver metal spheres",
		group:       "Built-in Scenes",
		create:      NewDefaultScene,
	},
	"glass": {
		description: "Hollow glass bubble beside a diffuse and a polished metal sphere",
		group:       "Built-in Scenes",
		create:      NewGlassScene,
	},
	"sphere-grid": {
		description: "Grid of diffuse, metal, and glass spheres in graded colors",
		group:       "Grids",
		create:      NewSphereGridScene,
	},
}

// NewScene creates the built-in scene with the given id
func NewScene(id string) (*Scene, error) {
	builtin, ok := builtinScenes[id]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", id, strings.Join(SceneIDs(), ", "))
	}
	return builtin.create(), nil
}

// SceneIDs returns the ids of every built-in scene in sorted order
func SceneIDs() []string {
	ids := make([]string, 0, len(builtinScenes))
	for id := range builtinScenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ListScenes returns metadata for every built-in scene, sorted by id
func ListScenes() []SceneInfo {
	var scenes []SceneInfo
	for _, id := range SceneIDs() {
		builtin := builtinScenes[id]
		scenes = append(scenes, SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Description: builtin.description,
			Group:       builtin.group,
		})
	}
	return scenes
}

// ListAllScenes returns the built-in scenes grouped by category
func ListAllScenes() ScenesResponse {
	var response ScenesResponse

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range ListScenes() {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Create ordered groups (Built-in first, then alphabetical)
	var groupNames []string
	for groupName := range groupMap {
		if groupName != "Built-in Scenes" {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if builtInGroup, exists := groupMap["Built-in Scenes"]; exists {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   "Built-in Scenes",
			Scenes: builtInGroup,
		})
	}

	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response
}

// titleCase converts an id-style string to title case
// e.g., "sphere-grid" -> "Sphere Grid"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
