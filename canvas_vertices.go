package canvas

import (
	"fmt"
	"math"
)

// VertexMode selects how DrawVertices groups vertices into triangles.
type VertexMode uint8

const (
	// VertexModeTriangles uses each group of three vertices as a triangle.
	VertexModeTriangles VertexMode = iota
	// VertexModeTriangleStrip forms a triangle from every three
	// consecutive vertices.
	VertexModeTriangleStrip
	// VertexModeTriangleFan forms triangles sharing the first vertex.
	VertexModeTriangleFan
)

func (m VertexMode) String() string {
	switch m {
	case VertexModeTriangles:
		return "Triangles"
	case VertexModeTriangleStrip:
		return "TriangleStrip"
	case VertexModeTriangleFan:
		return "TriangleFan"
	}
	return fmt.Sprintf("VertexMode(%d)", m)
}

// Vertices is the argument block of DrawVertices. Coordinate arrays hold
// x, y pairs.
type Vertices struct {
	Mode        VertexMode
	VertexCount int // number of floats in Verts to use, two per vertex
	Verts       []float64
	VertOffset  int
	Texs        []float64 // optional texture coordinates for the shader
	TexOffset   int
	Colors      []uint32 // optional per-vertex colors
	ColorOffset int
	Indices     []uint16 // optional vertex indices
	IndexOffset int
	IndexCount  int
}

// mesh is a validated triangle mesh in local coordinates.
type mesh struct {
	points []Point
	texs   []Point
	colors []uint32
	tris   [][3]int
}

// DrawVertices draws a triangle mesh. Per-vertex colors are interpolated
// across each triangle; texture coordinates sample the paint shader and,
// with colors, are modulated by them. Texture coordinates without a
// shader are ignored.
func (c *Canvas) DrawVertices(v Vertices, p *Paint) error {
	p, err := c.prepare(p)
	if err != nil {
		return err
	}
	if err := checkRange("verts", v.VertOffset, v.VertexCount, len(v.Verts)); err != nil {
		return err
	}
	n := v.VertexCount / 2
	m := mesh{points: make([]Point, n)}
	for i := range n {
		m.points[i] = Point{v.Verts[v.VertOffset+2*i], v.Verts[v.VertOffset+2*i+1]}
	}
	if v.Texs != nil {
		if err := checkRange("texs", v.TexOffset, 2*n, len(v.Texs)); err != nil {
			return err
		}
		m.texs = make([]Point, n)
		for i := range n {
			m.texs[i] = Point{v.Texs[v.TexOffset+2*i], v.Texs[v.TexOffset+2*i+1]}
		}
	}
	if v.Colors != nil {
		if err := checkRange("colors", v.ColorOffset, n, len(v.Colors)); err != nil {
			return err
		}
		m.colors = v.Colors[v.ColorOffset : v.ColorOffset+n]
	}

	order := make([]int, 0, n)
	if v.Indices != nil {
		if err := checkRange("indices", v.IndexOffset, v.IndexCount, len(v.Indices)); err != nil {
			return err
		}
		for _, idx := range v.Indices[v.IndexOffset : v.IndexOffset+v.IndexCount] {
			if int(idx) >= n {
				return fmt.Errorf("%w: index %d with %d vertices", ErrIndexOutOfBounds, idx, n)
			}
			order = append(order, int(idx))
		}
	} else {
		for i := range n {
			order = append(order, i)
		}
	}
	m.tris = triangulate(v.Mode, order)
	if m.texs != nil && p.Shader == nil {
		Logger().Warn("canvas: texture coordinates ignored without a shader")
		m.texs = nil
	}
	return c.drawMesh(m, p)
}

// triangulate expands a vertex order into triangles for mode.
func triangulate(mode VertexMode, order []int) [][3]int {
	var tris [][3]int
	switch mode {
	case VertexModeTriangleStrip:
		for i := 2; i < len(order); i++ {
			tris = append(tris, [3]int{order[i-2], order[i-1], order[i]})
		}
	case VertexModeTriangleFan:
		for i := 2; i < len(order); i++ {
			tris = append(tris, [3]int{order[0], order[i-1], order[i]})
		}
	default:
		for i := 2; i < len(order); i += 3 {
			tris = append(tris, [3]int{order[i-2], order[i-1], order[i]})
		}
	}
	return tris
}

// DrawBitmapMesh draws bm warped over a grid of meshWidth by meshHeight
// cells. verts holds (meshWidth+1)*(meshHeight+1) x, y pairs in row
// order; colors, when non-nil, holds one color per vertex and modulates
// the bitmap.
func (c *Canvas) DrawBitmapMesh(bm *Bitmap, meshWidth, meshHeight int, verts []float64, vertOffset int, colors []uint32, colorOffset int, p *Paint) error {
	p, err := c.prepareOptional(p)
	if err != nil {
		return err
	}
	if meshWidth < 0 || meshHeight < 0 {
		return fmt.Errorf("%w: mesh %dx%d", ErrInvalidArgument, meshWidth, meshHeight)
	}
	if err := c.checkBitmap(bm); err != nil {
		return err
	}
	if meshWidth == 0 || meshHeight == 0 {
		return nil
	}
	count := (meshWidth + 1) * (meshHeight + 1)
	if err := checkRange("verts", vertOffset, 2*count, len(verts)); err != nil {
		return err
	}
	if colors != nil {
		if err := checkRange("colors", colorOffset, count, len(colors)); err != nil {
			return err
		}
	}

	m := mesh{points: make([]Point, count), texs: make([]Point, count)}
	w, h := float64(bm.Width()), float64(bm.Height())
	for j := 0; j <= meshHeight; j++ {
		for i := 0; i <= meshWidth; i++ {
			k := j*(meshWidth+1) + i
			m.points[k] = Point{verts[vertOffset+2*k], verts[vertOffset+2*k+1]}
			m.texs[k] = Point{w * float64(i) / float64(meshWidth), h * float64(j) / float64(meshHeight)}
		}
	}
	if colors != nil {
		m.colors = colors[colorOffset : colorOffset+count]
	}
	for j := range meshHeight {
		for i := range meshWidth {
			k := j*(meshWidth+1) + i
			m.tris = append(m.tris,
				[3]int{k, k + 1, k + meshWidth + 1},
				[3]int{k + 1, k + meshWidth + 2, k + meshWidth + 1})
		}
	}
	sh := NewBitmapShader(bm, TileClamp, TileClamp)
	sh.Filter = p.IsFilterBitmap()
	p.Shader = sh
	return c.drawMesh(m, p)
}

// deviceTriangle caches what drawMesh needs to locate and interpolate a
// pixel inside one triangle.
type deviceTriangle struct {
	v      [3]int
	a, b   Point // edge vectors from the first corner
	origin Point
	det    float64
	box    Rect
}

func (t *deviceTriangle) barycentric(q Point) (w0, w1, w2 float64, inside bool) {
	dx, dy := q.X-t.origin.X, q.Y-t.origin.Y
	w1 = (dx*t.b.Y - dy*t.b.X) / t.det
	w2 = (t.a.X*dy - t.a.Y*dx) / t.det
	w0 = 1 - w1 - w2
	const eps = -1e-9
	return w0, w1, w2, w0 >= eps && w1 >= eps && w2 >= eps
}

// drawMesh rasterizes the union of the mesh triangles and shades each
// pixel from the triangle containing its center.
func (c *Canvas) drawMesh(m mesh, p *Paint) error {
	ctm := c.top().matrix
	inv, ok := ctm.Invert()
	if !ok {
		return nil
	}
	dev := make([]Point, len(m.points))
	for i, q := range m.points {
		dev[i] = ctm.TransformPoint(q)
	}
	tris := make([]deviceTriangle, 0, len(m.tris))
	polys := make([][]Point, 0, len(m.tris))
	for _, v := range m.tris {
		p0, p1, p2 := dev[v[0]], dev[v[1]], dev[v[2]]
		a := Point{p1.X - p0.X, p1.Y - p0.Y}
		b := Point{p2.X - p0.X, p2.Y - p0.Y}
		det := a.X*b.Y - a.Y*b.X
		if math.Abs(det) < 1e-12 {
			continue
		}
		poly := []Point{p0, p1, p2}
		if det < 0 {
			poly = []Point{p0, p2, p1}
		}
		polys = append(polys, poly)
		box := Rect{
			Left: min(p0.X, p1.X, p2.X), Top: min(p0.Y, p1.Y, p2.Y),
			Right: max(p0.X, p1.X, p2.X), Bottom: max(p0.Y, p1.Y, p2.Y),
		}
		tris = append(tris, deviceTriangle{v: v, a: a, b: b, origin: p0, det: det, box: box})
	}
	if len(tris) == 0 {
		return nil
	}
	bounds := polygonBounds(polys).Intersect(c.drawBounds())
	if bounds.Empty() {
		return nil
	}
	cov := c.raster.Rasterize(polys, bounds, RasterOptions{AntiAlias: p.IsAntiAlias()})

	base := p.Color | 0xff000000
	shade := func(q Point) uint32 {
		t, w0, w1, w2 := locate(tris, q)
		var col uint32 = base
		switch {
		case m.texs != nil && p.Shader != nil:
			uv := interpolatePoint(m.texs, t.v, w0, w1, w2)
			col = p.Shader.ColorAt(uv.X, uv.Y)
		case p.Shader != nil:
			lq := inv.TransformPoint(q)
			col = p.Shader.ColorAt(lq.X, lq.Y)
		}
		if m.colors != nil {
			vc := interpolateColor(m.colors, t.v, w0, w1, w2)
			if p.Shader != nil {
				col = modulate(col, vc)
			} else {
				col = vc
			}
		}
		return col
	}
	return c.blit(cov, func(x, y int) uint32 {
		return shade(Point{float64(x) + 0.5, float64(y) + 0.5})
	}, p.Alpha(), p.BlendMode, p.ColorFilter)
}

// locate returns the triangle containing q with its barycentric weights.
// Edge pixels whose centers fall outside every triangle use the nearest
// one, with weights clamped onto it.
func locate(tris []deviceTriangle, q Point) (t *deviceTriangle, w0, w1, w2 float64) {
	best := math.Inf(1)
	for i := range tris {
		tri := &tris[i]
		if !tri.box.Inset(-1, -1).Contains(q.X, q.Y) && t != nil {
			continue
		}
		a, b, c, inside := tri.barycentric(q)
		if inside {
			return tri, a, b, c
		}
		miss := -min(a, 0) - min(b, 0) - min(c, 0)
		if miss < best {
			best = miss
			t, w0, w1, w2 = tri, a, b, c
		}
	}
	w0, w1, w2 = max(w0, 0), max(w1, 0), max(w2, 0)
	if sum := w0 + w1 + w2; sum > 0 {
		w0, w1, w2 = w0/sum, w1/sum, w2/sum
	}
	return t, w0, w1, w2
}

func interpolatePoint(pts []Point, v [3]int, w0, w1, w2 float64) Point {
	return Point{
		X: pts[v[0]].X*w0 + pts[v[1]].X*w1 + pts[v[2]].X*w2,
		Y: pts[v[0]].Y*w0 + pts[v[1]].Y*w1 + pts[v[2]].Y*w2,
	}
}

func interpolateColor(colors []uint32, v [3]int, w0, w1, w2 float64) uint32 {
	var out uint32
	for shift := uint(0); shift < 32; shift += 8 {
		ch := float64(colors[v[0]]>>shift&0xff)*w0 +
			float64(colors[v[1]]>>shift&0xff)*w1 +
			float64(colors[v[2]]>>shift&0xff)*w2
		out |= uint32(clampByte(int(math.Round(ch)))) << shift
	}
	return out
}

// modulate multiplies two colors channel by channel.
func modulate(a, b uint32) uint32 {
	var out uint32
	for shift := uint(0); shift < 32; shift += 8 {
		out |= ((a>>shift&0xff)*(b>>shift&0xff) + 127) / 255 << shift
	}
	return out
}
