package filter

// spotPlane returns a plane with a single lit pixel of value v on all channels.
func spotPlane(w, h, x, y int, v float32) *Plane {
	p := NewPlane(w, h)
	i := (y*w + x) * 3
	p.Pix[i+0] = v
	p.Pix[i+1] = v
	p.Pix[i+2] = v
	return p
}
