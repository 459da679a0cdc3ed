package compiler

import (
	"fmt"

	"github.com/emmachip8/ec8/internal/vm"
)

// DataSegment is a named byte blob declared with a `data` line. Addr is its
// byte offset within the data segment, assigned in declaration order.
type DataSegment struct {
	Name  string
	Bytes []byte
	Addr  int
}

// ExtractData pulls every `data` line out of lines (in source order),
// assigning each a running byte offset, and errors if the combined data
// segment would leave no room for the program's own instructions.
func ExtractData(lines []Line) ([]DataSegment, error) {
	var datas []DataSegment
	offset := 0
	for _, line := range lines {
		if line.Kind != LineData {
			continue
		}
		datas = append(datas, DataSegment{Name: line.Name, Bytes: line.Bytes, Addr: offset})
		offset += len(line.Bytes)
	}
	if offset >= vm.MaxProgSize-10 {
		return nil, fmt.Errorf("Data segment too large: %d bytes, max %d", offset, vm.MaxProgSize-10)
	}
	return datas, nil
}

func totalDataBytes(datas []DataSegment) int {
	total := 0
	for _, d := range datas {
		total += len(d.Bytes)
	}
	return total
}
