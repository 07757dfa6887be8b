package gles

import (
	"strconv"
	"strings"

	"github.com/gogpu/gles/glx"
)

// bindingKey identifies one WGSL resource binding.
type bindingKey struct {
	group   uint32
	binding uint32
}

// blockBinding records where a uniform block ended up after linking.
type blockBinding struct {
	key        bindingKey
	blockIndex uint32
	point      uint32
}

// pipelineBindingMap is the result of reflecting a linked program. It maps
// WGSL bindings to the uniform buffer binding points the program was wired
// to, so bind group application can route buffers without re-reflecting.
type pipelineBindingMap struct {
	blocks map[bindingKey]blockBinding
}

func (m *pipelineBindingMap) lookup(group, binding uint32) (blockBinding, bool) {
	b, ok := m.blocks[bindingKey{group: group, binding: binding}]
	return b, ok
}

// parseBindingName recovers (group, binding) from a generated GLSL name of
// the form "_group_N_binding_M", optionally suffixed with a stage marker
// such as "_vs" or "_fs".
func parseBindingName(name string) (bindingKey, bool) {
	const marker = "_group_"
	i := strings.Index(name, marker)
	if i < 0 {
		return bindingKey{}, false
	}
	rest := name[i+len(marker):]
	groupStr, rest, ok := strings.Cut(rest, "_binding_")
	if !ok {
		return bindingKey{}, false
	}
	// Strip a stage suffix if present.
	bindingStr := rest
	if j := strings.IndexByte(rest, '_'); j >= 0 {
		bindingStr = rest[:j]
	}
	group, err := strconv.ParseUint(groupStr, 10, 32)
	if err != nil {
		return bindingKey{}, false
	}
	binding, err := strconv.ParseUint(bindingStr, 10, 32)
	if err != nil {
		return bindingKey{}, false
	}
	return bindingKey{group: uint32(group), binding: uint32(binding)}, true
}

// reflectProgram walks the active uniform blocks of a freshly linked
// program, recovers the WGSL (group, binding) for each one, and assigns
// the block to the uniform buffer binding point equal to its group index.
//
// The generated names are the primary source: the first uniform nested in
// the block usually carries the "_group_N_binding_M" pattern, with the
// block's own name as a second chance. Blocks whose names carry no
// recognizable pattern are assigned sequentially in declaration order,
// which matches sources whose translator emits plain names.
func reflectProgram(gl glx.Context, program glx.Program) *pipelineBindingMap {
	m := &pipelineBindingMap{blocks: make(map[bindingKey]blockBinding)}

	count := gl.GetActiveUniformBlockCount(program)
	var nextFallback uint32
	for i := 0; i < count; i++ {
		index := uint32(i)
		key, ok := bindingKey{}, false

		if indices := gl.GetActiveUniformBlockUniformIndices(program, index); len(indices) > 0 {
			key, ok = parseBindingName(gl.GetActiveUniformName(program, indices[0]))
		}
		blockName := gl.GetActiveUniformBlockName(program, index)
		if !ok {
			key, ok = parseBindingName(blockName)
		}
		if !ok {
			key = bindingKey{group: nextFallback, binding: 0}
			Logger().Warn("uniform block name not recognized, assigning sequentially",
				"block", blockName, "index", index, "group", key.group)
		}
		if key.group >= nextFallback {
			nextFallback = key.group + 1
		}

		// The binding point for a block is its group index, which is
		// also where bind group application routes buffers.
		point := key.group
		gl.UniformBlockBinding(program, index, point)
		m.blocks[key] = blockBinding{key: key, blockIndex: index, point: point}

		Logger().Debug("uniform block bound",
			"block", blockName, "group", key.group, "binding", key.binding, "point", point)
	}
	return m
}
