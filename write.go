package cube

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//WriteFile writes the grid as a cube file with the given name. As with
//ReadFile, a .gz or .zst suffix selects on-the-fly compression.
func WriteFile(name string, g *Grid) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	var out io.Writer = f
	var comp io.Closer //the compressor, if any, must be closed to flush its last block
	switch {
	case strings.HasSuffix(name, ".gz"):
		zw := gzip.NewWriter(f)
		out = zw
		comp = zw
	case strings.HasSuffix(name, ".zst"):
		zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return FileError{"can't open zstd stream: " + err.Error(), name, []string{"WriteFile"}, true}
		}
		out = zw
		comp = zw
	}
	err = Write(out, g)
	if err != nil {
		if comp != nil {
			comp.Close()
		}
		return errDecorate(err, "WriteFile")
	}
	if comp != nil {
		err = comp.Close()
		if err != nil {
			return FileError{"closing compressed stream: " + err.Error(), name, []string{"WriteFile"}, true}
		}
	}
	return nil
}

//Write encodes the grid as a cube file on out. The output always uses Bohr
//(positive voxel counts), whatever units the grid was originally read in,
//and the usual cubegen layout of at most 6 density values per line.
func Write(out io.Writer, g *Grid) error {
	if g == nil {
		return FileError{"can't write a nil grid", "", []string{"Write"}, true}
	}
	w := bufio.NewWriter(out)
	t1, t2 := g.Titles()
	fmt.Fprintf(w, "%s\n%s\n", t1, t2)
	o := g.Origin()
	fmt.Fprintf(w, "%5d%12.6f%12.6f%12.6f\n", len(g.Atoms()), o[0], o[1], o[2])
	counts := g.Counts()
	for i := 0; i < 3; i++ {
		a := g.Axis(i)
		fmt.Fprintf(w, "%5d%12.6f%12.6f%12.6f\n", counts[i], a[0], a[1], a[2])
	}
	for _, at := range g.Atoms() {
		fmt.Fprintf(w, "%5d%12.6f%12.6f%12.6f%12.6f\n", at.Number, at.Charge, at.Coords[0], at.Coords[1], at.Coords[2])
	}
	n := g.NVoxels()
	for i := 0; i < n; i++ {
		fmt.Fprintf(w, "%13.5E", g.Value(i))
		//a newline after every 6 values, after every z-run, and at the end
		if (i+1)%6 == 0 || (i+1)%counts[2] == 0 || i == n-1 {
			w.WriteString("\n")
		}
	}
	err := w.Flush()
	if err != nil {
		return FileError{"writing cube data: " + err.Error(), g.Name(), []string{"Write"}, true}
	}
	return nil
}
