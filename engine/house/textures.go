package house

import (
	"path"

	"github.com/Carmen-Shannon/haunted-house/engine/renderer/material"
	"github.com/Carmen-Shannon/haunted-house/engine/resource"
)

// GrassRepeat is how many times the grass textures tile across the floor on each axis.
const GrassRepeat = 8

// TextureSet maps material channels to the handles requested for one surface.
type TextureSet map[material.Channel]resource.Handle

// Textures holds the handles for every textured surface of the tableau.
type Textures struct {
	Door   TextureSet
	Bricks TextureSet
	Grass  TextureSet
}

var (
	doorFiles = map[material.Channel]string{
		material.ChannelColor:            "door/color.jpg",
		material.ChannelAlpha:            "door/alpha.jpg",
		material.ChannelAmbientOcclusion: "door/ambientOcclusion.jpg",
		material.ChannelDisplacement:     "door/height.jpg",
		material.ChannelNormal:           "door/normal.jpg",
		material.ChannelMetalness:        "door/metalness.jpg",
		material.ChannelRoughness:        "door/roughness.jpg",
	}
	bricksFiles = map[material.Channel]string{
		material.ChannelColor:            "bricks/color.jpg",
		material.ChannelAmbientOcclusion: "bricks/ambientOcclusion.jpg",
		material.ChannelNormal:           "bricks/normal.jpg",
		material.ChannelRoughness:        "bricks/roughness.jpg",
	}
	grassFiles = map[material.Channel]string{
		material.ChannelColor:            "grass/color.jpg",
		material.ChannelAmbientOcclusion: "grass/ambientOcclusion.jpg",
		material.ChannelNormal:           "grass/normal.jpg",
		material.ChannelRoughness:        "grass/roughness.jpg",
	}
)

// RequestTextures issues the asynchronous loads for the door, brick and grass textures.
// The returned handles may still be pending; materials bind them immediately and the
// renderer samples them once they are ready.
//
// Parameters:
//   - rs: the resource set performing the loads
//   - dir: directory prefix of the texture keys, relative to the loader root
//
// Returns:
//   - Textures: handles grouped by surface
func RequestTextures(rs resource.ResourceSet, dir string) Textures {
	request := func(files map[material.Channel]string, options ...resource.TextureOption) TextureSet {
		set := make(TextureSet, len(files))
		for _, c := range material.Channels() {
			if file, ok := files[c]; ok {
				set[c] = rs.Load(path.Join(dir, file), options...)
			}
		}
		return set
	}
	return Textures{
		Door:   request(doorFiles),
		Bricks: request(bricksFiles),
		Grass:  request(grassFiles, resource.WithRepeat(GrassRepeat, GrassRepeat)),
	}
}

func (s TextureSet) options() []material.MaterialBuilderOption {
	var opts []material.MaterialBuilderOption
	for _, c := range material.Channels() {
		if h, ok := s[c]; ok && h != nil {
			opts = append(opts, material.WithTexture(c, h))
		}
	}
	return opts
}
