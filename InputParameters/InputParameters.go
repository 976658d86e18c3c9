package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/notargets/gomhd/types"
)

type DriverParameters struct {
	NumBins   int     `json:"NumBins"`
	MinOmega  float64 `json:"MinOmega"`
	MaxOmega  float64 `json:"MaxOmega"`
	Amplitude float64 `json:"Amplitude"`
	RiseTime  float64 `json:"RiseTime"`
	Seed      uint64  `json:"Seed"`
}

type DampingParameters struct {
	Enabled bool    `json:"Enabled"`
	Cells   float64 `json:"Cells"` // Layer depth in cells
	Scale   float64 `json:"Scale"`
}

// Parameters obtained from the YAML input file
type InputParameters2D struct {
	Title     string            `json:"Title"`
	Nx        int               `json:"Nx"`
	Ny        int               `json:"Ny"`
	ProcX     int               `json:"ProcX"` // Tiles along x
	ProcY     int               `json:"ProcY"`
	XMin      float64           `json:"XMin"`
	XMax      float64           `json:"XMax"`
	YMin      float64           `json:"YMin"`
	YMax      float64           `json:"YMax"`
	Dt        float64           `json:"Dt"`
	FinalTime float64           `json:"FinalTime"`
	MaxSteps  int               `json:"MaxSteps"`
	Gamma     float64           `json:"Gamma"`
	InitType  string            `json:"InitType"`
	B0        [3]float64        `json:"B0"`
	V0        [3]float64        `json:"V0"`
	BCs       map[string]string `json:"BCs"` // Edge name to BC kind name
	Driven    bool              `json:"Driven"`
	Driver    DriverParameters  `json:"Driver"`
	Damping   DampingParameters `json:"Damping"`
}

const DefaultNumBins = 1000

// Parse reads the YAML and fills unset process grid, gamma and driver bins with defaults
func (ip *InputParameters2D) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	if ip.ProcX == 0 {
		ip.ProcX = 1
	}
	if ip.ProcY == 0 {
		ip.ProcY = 1
	}
	if ip.Gamma == 0 {
		ip.Gamma = 5. / 3.
	}
	if ip.Driver.NumBins == 0 {
		ip.Driver.NumBins = DefaultNumBins
	}
	return
}

// EdgeKinds converts the BCs map, every edge must be named exactly once
func (ip *InputParameters2D) EdgeKinds() (ek types.EdgeKinds, err error) {
	var (
		seen [4]bool
		e    types.Edge
		bk   types.BCKIND
	)
	for name, kind := range ip.BCs {
		if e, err = types.NewEdge(name); err != nil {
			return
		}
		if seen[e] {
			err = fmt.Errorf("edge %s appears more than once in BCs", e)
			return
		}
		if bk, err = types.NewBCKind(kind); err != nil {
			err = fmt.Errorf("edge %s: %w", e, err)
			return
		}
		ek[e], seen[e] = bk, true
	}
	for _, e = range types.Edges {
		if !seen[e] {
			err = fmt.Errorf("no boundary condition given for edge %s", e)
			return
		}
	}
	err = ek.Validate()
	return
}

func (ip *InputParameters2D) Validate() (err error) {
	switch {
	case ip.Nx < 1 || ip.Ny < 1:
		err = fmt.Errorf("grid must have at least one cell per axis, have %dx%d", ip.Nx, ip.Ny)
	case ip.ProcX < 1 || ip.ProcY < 1:
		err = fmt.Errorf("process grid must have at least one tile per axis, have %dx%d", ip.ProcX, ip.ProcY)
	case ip.XMax <= ip.XMin || ip.YMax <= ip.YMin:
		err = fmt.Errorf("domain extents are empty: x [%g, %g], y [%g, %g]", ip.XMin, ip.XMax, ip.YMin, ip.YMax)
	case ip.Dt <= 0:
		err = fmt.Errorf("time step must be positive, have %g", ip.Dt)
	case ip.FinalTime <= 0 && ip.MaxSteps <= 0:
		err = fmt.Errorf("need a positive FinalTime or MaxSteps to stop the run")
	case ip.Gamma <= 1:
		err = fmt.Errorf("gamma must exceed 1, have %g", ip.Gamma)
	}
	if err != nil {
		return
	}
	_, err = ip.EdgeKinds()
	return
}

func (ip *InputParameters2D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d x %d]\t\t= Grid\n", ip.Nx, ip.Ny)
	fmt.Printf("[%d x %d]\t\t= Process Grid\n", ip.ProcX, ip.ProcY)
	fmt.Printf("[%g,%g]x[%g,%g]\t= Domain\n", ip.XMin, ip.XMax, ip.YMin, ip.YMax)
	fmt.Printf("%8.5f\t\t= Dt\n", ip.Dt)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("[%d]\t\t\t= MaxSteps\n", ip.MaxSteps)
	fmt.Printf("%8.5f\t\t= Gamma\n", ip.Gamma)
	fmt.Printf("[%s]\t\t= InitType\n", ip.InitType)
	fmt.Printf("%v\t\t= B0\n", ip.B0)
	fmt.Printf("%v\t\t= V0\n", ip.V0)
	keys := make([]string, len(ip.BCs))
	i := 0
	for k := range ip.BCs {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, ip.BCs[key])
	}
	if ip.Driven {
		d := ip.Driver
		fmt.Printf("Driver: %d bins, omega [%g,%g], A0 = %g, rise time = %g, seed = %d\n",
			d.NumBins, d.MinOmega, d.MaxOmega, d.Amplitude, d.RiseTime, d.Seed)
	}
	if ip.Damping.Enabled {
		fmt.Printf("Damping: %g cells, scale = %g\n", ip.Damping.Cells, ip.Damping.Scale)
	}
}
