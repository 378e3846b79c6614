// Package gamp provides a native graphics runtime for Go.
//
// # Overview
//
// gamp is a resolution-independent glyph rendering toolkit built around two
// subsystems:
//
//   - graph: a vector-glyph pipeline that converts TrueType-style outline
//     descriptions into GPU-ready triangle meshes using a constrained
//     Delaunay triangulator over a half-edge topology.
//   - gl: a typed descriptor model for vertex attributes, uniforms, shader
//     programs and buffer state against an OpenGL-family context.
//
// # Quick Start
//
//	import (
//	    "github.com/sgothel/gamp-sub001/font"
//	    "github.com/sgothel/gamp-sub001/graph"
//	)
//
//	face, _ := font.ParseFile("DejaVuSans.ttf")
//	shape, _ := face.RuneShape('g', 64)
//	tris := shape.Triangles()
//
// The triangle stream carries curve-aware texture coordinates implementing
// a quadratic Bezier fill rule, so a single fragment shader renders both
// straight and curved glyph regions at any resolution.
//
// # Architecture
//
// The library is organized into:
//   - graph, graph/tess: outline model and constrained Delaunay triangulation
//   - gl, gl/glx: GL data binding (buffers, uniforms, shaders, contexts)
//   - winsys, winsys/glfwdrv: windows, events and the frame loop
//   - font: font parsing and glyph outline extraction
//   - av: timestamp helpers for the AV subsystem
//
// # Coordinate System
//
// Glyph outlines use font-space coordinates with Y increasing upward, as
// delivered by the font. Winding follows the signed-area convention:
// counter-clockwise outlines are solid, clockwise outlines are holes.
package gamp

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
