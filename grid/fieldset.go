package grid

// FieldSet is the full state of one tile
type FieldSet struct {
	Rho, Energy, Temperature *Field
	Vx, Vy, Vz               *Field // Full step velocity
	Vx1, Vy1, Vz1            *Field // Half step predictor velocity
	Bx, By, Bz               *Field
}

func NewFieldSet(nx, ny int) (fs *FieldSet) {
	fs = &FieldSet{
		Rho:         NewField("rho", CellCentred, nx, ny),
		Energy:      NewField("energy", CellCentred, nx, ny),
		Temperature: NewField("temperature", CellCentred, nx, ny),
		Vx:          NewField("vx", Vertex, nx, ny),
		Vy:          NewField("vy", Vertex, nx, ny),
		Vz:          NewField("vz", Vertex, nx, ny),
		Vx1:         NewField("vx1", Vertex, nx, ny),
		Vy1:         NewField("vy1", Vertex, nx, ny),
		Vz1:         NewField("vz1", Vertex, nx, ny),
		Bx:          NewField("bx", XFace, nx, ny),
		By:          NewField("by", YFace, nx, ny),
		Bz:          NewField("bz", CellCentred, nx, ny),
	}
	return
}

func (fs *FieldSet) Velocity() [3]*Field  { return [3]*Field{fs.Vx, fs.Vy, fs.Vz} }
func (fs *FieldSet) Predictor() [3]*Field { return [3]*Field{fs.Vx1, fs.Vy1, fs.Vz1} }

func (fs *FieldSet) All() []*Field {
	return []*Field{
		fs.Rho, fs.Energy, fs.Temperature,
		fs.Vx, fs.Vy, fs.Vz,
		fs.Vx1, fs.Vy1, fs.Vz1,
		fs.Bx, fs.By, fs.Bz,
	}
}
