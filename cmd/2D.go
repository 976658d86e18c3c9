/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tebeka/atexit"

	"github.com/notargets/gomhd/InputParameters"
	"github.com/notargets/gomhd/model_problems/MHD2D"
)

type Model2D struct {
	ICFile    string
	Verbose   bool
	PlotSteps int
	Profile   bool
}

const exampleFile = `
########################################
Title: "Driven Shear"
Nx: 64
Ny: 64
ProcX: 2
ProcY: 2
XMin: 0.
XMax: 1.
YMin: 0.
YMax: 1.
Dt: 0.001
FinalTime: 1.
InitType: Shear # Can be "Uniform"
B0: [1., 0.5, 0.]
V0: [0., 0., 0.1]
BCs:
  XMin: Periodic
  XMax: Periodic
  YMin: UserDefined # Can be "Open"
  YMax: UserDefined
Driven: true
Driver:
  MinOmega: 1.
  MaxOmega: 100.
  Amplitude: 0.01
  RiseTime: 0.1
  Seed: 1
Damping:
  Enabled: true
  Cells: 4
  Scale: 10.
########################################
`

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Two dimensional MHD boundary and remap solver",
	Long: `
Reads a YAML input file, decomposes the domain over a process grid and steps
the boundary conditions and bz remap until the final time or step count,

gomhd 2D -I input.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		m2d := &Model2D{
			Verbose:   viper.GetBool("verbose"),
			PlotSteps: viper.GetInt("plotSteps"),
			Profile:   viper.GetBool("profile"),
		}
		if m2d.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			atexit.Fatal(err)
		}
		ip, err := processInput(m2d)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			if len(m2d.ICFile) == 0 {
				fmt.Printf("Example File:%s\n", exampleFile)
			}
			atexit.Exit(1)
		}
		if m2d.Verbose {
			ip.Print()
		}
		if err = Run2D(m2d, ip); err != nil {
			atexit.Fatal(err)
		}
	},
}

func processInput(m2d *Model2D) (ip *InputParameters.InputParameters2D, err error) {
	var data []byte
	if len(m2d.ICFile) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
		return
	}
	if data, err = os.ReadFile(m2d.ICFile); err != nil {
		return
	}
	ip = &InputParameters.InputParameters2D{}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", m2d.ICFile, err)
	}
	if err = ip.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", m2d.ICFile, err)
	}
	return
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Nx, Ny, ProcX, ProcY\n\t- BCs per edge")
	TwoDCmd.Flags().BoolP("verbose", "v", false, "print the run header and per step diagnostics")
	TwoDCmd.Flags().IntP("plotSteps", "s", 1, "number of steps between diagnostic lines")
	TwoDCmd.Flags().BoolP("profile", "p", false, "write a CPU profile of the run to the current directory")
	for _, name := range []string{"verbose", "plotSteps", "profile"} {
		if err := viper.BindPFlag(name, TwoDCmd.Flags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func Run2D(m2d *Model2D, ip *InputParameters.InputParameters2D) (err error) {
	if m2d.Profile {
		p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
		atexit.Register(p.Stop)
	}
	s, err := MHD2D.NewSimulation(ip, m2d.Verbose)
	if err != nil {
		return
	}
	s.PlotSteps = m2d.PlotSteps
	err = s.Solve()
	return
}
