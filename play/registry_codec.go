package play

import "github.com/go-mclib/mcserver/nbt"

// dimensionTypeName and overworldName are the only registry entries this
// server ever advertises: one dimension type, one dimension, both named
// minecraft:overworld, matching the single-dimension world §4.6 step 1
// names.
const (
	dimensionTypeName = "minecraft:dimension_type"
	overworldName     = "minecraft:overworld"
)

// registryCodec builds the minimal dimension-type registry §4.6 step 1
// requires, by running a plain Go map through nbt.FromJSON the same way the
// mapping/list/bool/int/string rules of a json-to-nbt conversion would.
//
// Grounded on original_source/minestom/Packet/Server.py's
// ServerJoinGamePacket.registry_codec literal: same
// "minecraft:dimension_type" -> {type, value: [{name, id, element}]} shape,
// with the same six dimension-type element keys (min_y, height,
// logical_height, natural, has_skylight, bed_works).
func registryCodec() (nbt.Tag, error) {
	return nbt.FromJSON(map[string]any{
		dimensionTypeName: map[string]any{
			"type": dimensionTypeName,
			"value": []any{
				map[string]any{
					"name": overworldName,
					"id":   0,
					"element": map[string]any{
						"min_y":          0,
						"height":         256,
						"logical_height": 256,
						"natural":        true,
						"has_skylight":   true,
						"bed_works":      true,
					},
				},
			},
		},
	})
}
