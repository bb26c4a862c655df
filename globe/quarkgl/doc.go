// Package quarkgl is the small software 3D engine the globe renders through.
//
// It owns a flat list of mesh slots addressed by integer handles, a camera and
// a single directional light. The globe code treats it as its scene graph:
// meshes are added and removed by handle, per-mesh uniforms (glow, thickness,
// opacity) are set by name, and rays can be intersected against any triangle
// mesh.
//
// Pipeline (fixed):
//
//	Scene → Transform → Projection → Clipping → Rasterization → Frame output.
//
// The renderer is software-only and draws into a caller-provided Target. It
// keeps its depth buffer between frames and avoids allocations in the render
// hot path.
package quarkgl
