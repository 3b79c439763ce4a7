package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Parse reads and parses the container.txt found at path.
func Parse(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return m, nil
}

// ParseReader parses container.txt content from r.
func ParseReader(r io.Reader) (*Model, error) {
	lr := newLineReader(r)
	m := &Model{}

	var err error
	if m.MultiThreaded, err = lr.nextBool01(); err != nil {
		return nil, fmt.Errorf("mt flag: %w", err)
	}
	if m.Profiling, err = lr.nextBool01(); err != nil {
		return nil, fmt.Errorf("profiling flag: %w", err)
	}
	if m.TimeStep, err = lr.nextFloat(); err != nil {
		return nil, fmt.Errorf("time_step: %w", err)
	}
	if m.Slaves, err = parseSlaveList(lr); err != nil {
		return nil, err
	}
	if err := parseLocalCounts(lr, m); err != nil {
		return nil, err
	}
	if err := parsePortTables(lr, m); err != nil {
		return nil, err
	}

	m.IO = make([]SlaveIO, len(m.Slaves))
	for i := range m.Slaves {
		io, err := parseSlaveIO(lr)
		if err != nil {
			return nil, fmt.Errorf("slave %d wiring: %w", i, err)
		}
		m.IO[i] = io
	}
	return m, nil
}

func parseSlaveList(lr *lineReader) ([]SlaveSpec, error) {
	n, err := lr.nextInt()
	if err != nil {
		return nil, fmt.Errorf("slave count: %w", err)
	}
	slaves := make([]SlaveSpec, 0, n)
	for i := 0; i < n; i++ {
		dir, err := lr.next()
		if err != nil {
			return nil, fmt.Errorf("slave %d directory: %w", i, err)
		}
		ident, err := lr.next()
		if err != nil {
			return nil, fmt.Errorf("slave %d identifier: %w", i, err)
		}
		guid, err := lr.next()
		if err != nil {
			return nil, fmt.Errorf("slave %d guid: %w", i, err)
		}
		slaves = append(slaves, SlaveSpec{Directory: filepath.Clean(dir), Identifier: ident, GUID: guid})
	}
	return slaves, nil
}

func parseLocalCounts(lr *lineReader, m *Model) error {
	fields, err := lr.fields(4)
	if err != nil {
		return fmt.Errorf("local variable counts: %w", err)
	}
	counts := make([]int, 4)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return lr.errf("local variable counts: %q is not an integer", f)
		}
		counts[i] = v
	}
	m.LocalReals, m.LocalIntegers, m.LocalBooleans, m.LocalStrings = counts[0], counts[1], counts[2], counts[3]
	return nil
}

// parsePortTable reads one typed translation table: a count P then P lines
// of "vr slave_index slave_vr", matching READ_CONF_VR(type).
func parsePortTable(lr *lineReader) (PortTable, error) {
	p, err := lr.nextInt()
	if err != nil {
		return nil, fmt.Errorf("port count: %w", err)
	}
	table := make(PortTable, p)
	for i := 0; i < p; i++ {
		fields, err := lr.fields(3)
		if err != nil {
			return nil, fmt.Errorf("port entry %d: %w", i, err)
		}
		vr, err1 := strconv.Atoi(fields[0])
		slaveIndex, err2 := strconv.Atoi(fields[1])
		slaveVR, err3 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, lr.errf("port entry %d: malformed fields %v", i, fields)
		}
		if vr < 0 || vr >= p {
			return nil, lr.errf("port entry %d: vr %d out of range [0,%d)", i, vr, p)
		}
		table[vr] = PortEntry{SlaveIndex: int32(slaveIndex), SlaveVR: uint32(slaveVR)}
	}
	return table, nil
}

func parsePortTables(lr *lineReader, m *Model) error {
	var err error
	if m.PortReals, err = parsePortTable(lr); err != nil {
		return fmt.Errorf("real port table: %w", err)
	}
	if m.PortIntegers, err = parsePortTable(lr); err != nil {
		return fmt.Errorf("integer port table: %w", err)
	}
	if m.PortBooleans, err = parsePortTable(lr); err != nil {
		return fmt.Errorf("boolean port table: %w", err)
	}
	if m.PortStrings, err = parsePortTable(lr); err != nil {
		return fmt.Errorf("string port table: %w", err)
	}
	return nil
}

// parseWireList reads one in/out translation list: a count n then n lines
// of "container_vr slave_vr".
func parseWireList(lr *lineReader) ([]WireEntry, error) {
	n, err := lr.nextInt()
	if err != nil {
		return nil, fmt.Errorf("wire list count: %w", err)
	}
	entries := make([]WireEntry, n)
	for i := 0; i < n; i++ {
		fields, err := lr.fields(2)
		if err != nil {
			return nil, fmt.Errorf("wire entry %d: %w", i, err)
		}
		cvr, err1 := strconv.Atoi(fields[0])
		svr, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			return nil, lr.errf("wire entry %d: malformed fields %v", i, fields)
		}
		entries[i] = WireEntry{ContainerVR: uint32(cvr), SlaveVR: uint32(svr)}
	}
	return entries, nil
}

func parseStartReals(lr *lineReader) ([]StartValue[float64], error) {
	n, err := lr.nextInt()
	if err != nil {
		return nil, err
	}
	out := make([]StartValue[float64], n)
	for i := 0; i < n; i++ {
		fields, err := lr.fields(2)
		if err != nil {
			return nil, err
		}
		vr, err1 := strconv.Atoi(fields[0])
		val, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			return nil, lr.errf("start real %d: malformed fields %v", i, fields)
		}
		out[i] = StartValue[float64]{VR: uint32(vr), Value: val}
	}
	return out, nil
}

func parseStartIntegers(lr *lineReader) ([]StartValue[int32], error) {
	n, err := lr.nextInt()
	if err != nil {
		return nil, err
	}
	out := make([]StartValue[int32], n)
	for i := 0; i < n; i++ {
		fields, err := lr.fields(2)
		if err != nil {
			return nil, err
		}
		vr, err1 := strconv.Atoi(fields[0])
		val, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			return nil, lr.errf("start integer %d: malformed fields %v", i, fields)
		}
		out[i] = StartValue[int32]{VR: uint32(vr), Value: int32(val)}
	}
	return out, nil
}

func parseStartBooleans(lr *lineReader) ([]StartValue[bool], error) {
	n, err := lr.nextInt()
	if err != nil {
		return nil, err
	}
	out := make([]StartValue[bool], n)
	for i := 0; i < n; i++ {
		fields, err := lr.fields(2)
		if err != nil {
			return nil, err
		}
		vr, err1 := strconv.Atoi(fields[0])
		val, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			return nil, lr.errf("start boolean %d: malformed fields %v", i, fields)
		}
		out[i] = StartValue[bool]{VR: uint32(vr), Value: val != 0}
	}
	return out, nil
}

func parseStartStrings(lr *lineReader) ([]StartValue[string], error) {
	n, err := lr.nextInt()
	if err != nil {
		return nil, err
	}
	out := make([]StartValue[string], n)
	for i := 0; i < n; i++ {
		fields, err := lr.fields(2)
		if err != nil {
			return nil, err
		}
		vr, err1 := strconv.Atoi(fields[0])
		if err1 != nil {
			return nil, lr.errf("start string %d: malformed fields %v", i, fields)
		}
		out[i] = StartValue[string]{VR: uint32(vr), Value: fields[1]}
	}
	return out, nil
}

func parseSlaveIO(lr *lineReader) (SlaveIO, error) {
	var io SlaveIO
	var err error

	if io.InReals, err = parseWireList(lr); err != nil {
		return io, fmt.Errorf("in reals: %w", err)
	}
	if io.InIntegers, err = parseWireList(lr); err != nil {
		return io, fmt.Errorf("in integers: %w", err)
	}
	if io.InBooleans, err = parseWireList(lr); err != nil {
		return io, fmt.Errorf("in booleans: %w", err)
	}
	if io.InStrings, err = parseWireList(lr); err != nil {
		return io, fmt.Errorf("in strings: %w", err)
	}

	if io.StartReals, err = parseStartReals(lr); err != nil {
		return io, fmt.Errorf("start reals: %w", err)
	}
	if io.StartIntegers, err = parseStartIntegers(lr); err != nil {
		return io, fmt.Errorf("start integers: %w", err)
	}
	if io.StartBooleans, err = parseStartBooleans(lr); err != nil {
		return io, fmt.Errorf("start booleans: %w", err)
	}
	if io.StartStrings, err = parseStartStrings(lr); err != nil {
		return io, fmt.Errorf("start strings: %w", err)
	}

	if io.OutReals, err = parseWireList(lr); err != nil {
		return io, fmt.Errorf("out reals: %w", err)
	}
	if io.OutIntegers, err = parseWireList(lr); err != nil {
		return io, fmt.Errorf("out integers: %w", err)
	}
	if io.OutBooleans, err = parseWireList(lr); err != nil {
		return io, fmt.Errorf("out booleans: %w", err)
	}
	if io.OutStrings, err = parseWireList(lr); err != nil {
		return io, fmt.Errorf("out strings: %w", err)
	}

	return io, nil
}
