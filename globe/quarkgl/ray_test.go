package quarkgl

import "testing"

func quadMesh() Mesh {
	// Unit quad in the z=0 plane facing +Z.
	return Mesh{
		Vertices: []Vertex{
			{Pos: V3(-1, -1, 0)},
			{Pos: V3(1, -1, 0)},
			{Pos: V3(1, 1, 0)},
			{Pos: V3(-1, 1, 0)},
		},
		Indices: []uint16{0, 1, 2, 0, 2, 3},
	}
}

func TestIntersectRayHitsQuad(t *testing.T) {
	s := CreateScene(2)
	id := s.AddMesh(quadMesh())

	hits := s.IntersectRay(Ray{Origin: V3(0.2, 0.3, 5), Dir: V3(0, 0, -1)}, id)
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	if !near(hits[0].Distance, 5) || !near(hits[0].Point.X, 0.2) || !near(hits[0].Point.Y, 0.3) {
		t.Fatalf("unexpected hit %+v", hits[0])
	}
}

func TestIntersectRaySharedEdgeHitsOnce(t *testing.T) {
	s := CreateScene(2)
	id := s.AddMesh(quadMesh())

	// Both triangles of the quad share the diagonal through the origin.
	hits := s.IntersectRay(Ray{Origin: V3(0, 0, 5), Dir: V3(0, 0, -1)}, id)
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1: %+v", len(hits), hits)
	}
	// A shared corner vertex is reported once as well.
	hits = s.IntersectRay(Ray{Origin: V3(1, 1, 5), Dir: V3(0, 0, -1)}, id)
	if len(hits) != 1 {
		t.Fatalf("corner: got %d hits, want 1", len(hits))
	}
}

func TestIntersectRayMissAndDisabled(t *testing.T) {
	s := CreateScene(2)
	id := s.AddMesh(quadMesh())

	if hits := s.IntersectRay(Ray{Origin: V3(3, 0, 5), Dir: V3(0, 0, -1)}, id); len(hits) != 0 {
		t.Fatalf("expected miss, got %+v", hits)
	}
	s.SetMeshEnabled(id, false)
	if hits := s.IntersectRay(Ray{Origin: V3(0, 0, 5), Dir: V3(0, 0, -1)}, id); len(hits) != 0 {
		t.Fatalf("disabled mesh should not be hit")
	}
	if hits := s.IntersectRay(Ray{Origin: V3(0, 0, 5), Dir: V3(0, 0, -1)}, 7); hits != nil {
		t.Fatalf("unknown mesh should not be hit")
	}
}

func TestIntersectRaySortedNearestFirst(t *testing.T) {
	s := CreateScene(2)
	m := quadMesh()
	// Second quad behind the first.
	for _, v := range quadMesh().Vertices {
		v.Pos.Z = -2
		m.Vertices = append(m.Vertices, v)
	}
	m.Indices = append(m.Indices, 4, 5, 6, 4, 6, 7)
	id := s.AddMesh(m)

	hits := s.IntersectRay(Ray{Origin: V3(0.1, 0.1, 5), Dir: V3(0, 0, -1)}, id)
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits[0].Distance > hits[1].Distance {
		t.Fatalf("hits not sorted: %+v", hits)
	}
}

func TestIntersectRayUsesTransform(t *testing.T) {
	s := CreateScene(2)
	id := s.AddMesh(quadMesh())
	s.UpdateMeshTransform(id, Mat4Translate(V3(10, 0, 0)))

	if hits := s.IntersectRay(Ray{Origin: V3(0, 0, 5), Dir: V3(0, 0, -1)}, id); len(hits) != 0 {
		t.Fatalf("expected miss at origin after translation")
	}
	if hits := s.IntersectRay(Ray{Origin: V3(10, 0, 5), Dir: V3(0, 0, -1)}, id); len(hits) != 1 {
		t.Fatalf("expected hit at translated quad")
	}
}

func TestCameraRayThroughCenter(t *testing.T) {
	cam := Camera{Position: V3(0, 0, 5), Target: V3(0, 0, 0), FOVYRad: 0.6}
	r := cam.Ray(0, 0, 1.5)
	if r.Origin != cam.Position {
		t.Fatalf("origin %+v", r.Origin)
	}
	if !near(r.Dir.X, 0) || !near(r.Dir.Y, 0) || !near(r.Dir.Z, -1) {
		t.Fatalf("dir %+v", r.Dir)
	}

	up := cam.Ray(0, 1, 1.5)
	if up.Dir.Y <= 0 {
		t.Fatalf("ndc +Y should tilt ray up, got %+v", up.Dir)
	}
	right := cam.Ray(1, 0, 1.5)
	if right.Dir.X <= 0 {
		t.Fatalf("ndc +X should tilt ray right, got %+v", right.Dir)
	}
}

func TestProjectPointCenter(t *testing.T) {
	s := CreateScene(1)
	s.Camera.Position = V3(0, 0, 5)
	x, y, ok := s.ProjectPoint(V3(0, 0, 0), 101, 101)
	if !ok || x != 50 || y != 50 {
		t.Fatalf("got (%d,%d,%v)", x, y, ok)
	}
	if _, _, ok := s.ProjectPoint(V3(0, 0, 10), 101, 101); ok {
		t.Fatalf("point behind camera should not project")
	}
}

func TestUniformDefaultsAndSet(t *testing.T) {
	s := CreateScene(1)
	id := s.AddMesh(quadMesh())
	m, _ := s.Mesh(id)
	if m.Uniform(UniformGlow) != 1 || m.Uniform(UniformThickness) != 1 || m.Uniform(UniformOpacity) != 1 {
		t.Fatalf("unexpected defaults")
	}
	s.SetUniform(id, UniformGlow, 2.5)
	m, _ = s.Mesh(id)
	if m.Uniform(UniformGlow) != 2.5 {
		t.Fatalf("glow not stored")
	}
}
