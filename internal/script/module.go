package script

import (
	"github.com/lucasb-eyer/go-colorful"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/caret/internal/engine"
)

// ModuleName is the global the editing functions are registered under.
const ModuleName = "caret"

// module exposes one engine to Lua.
type module struct {
	eng *engine.Engine
}

func registerModule(L *lua.LState, e *engine.Engine) {
	m := &module{eng: e}
	mod := L.NewTable()

	L.SetField(mod, "move", L.NewFunction(m.move))
	L.SetField(mod, "write", L.NewFunction(m.write))
	L.SetField(mod, "delete", L.NewFunction(m.delete))
	L.SetField(mod, "cursor", L.NewFunction(m.cursor))
	L.SetField(mod, "add_cursor", L.NewFunction(m.addCursor))
	L.SetField(mod, "select", L.NewFunction(m.selectRange))
	L.SetField(mod, "select_all", L.NewFunction(m.selectAll))
	L.SetField(mod, "selections", L.NewFunction(m.selections))
	L.SetField(mod, "selected_text", L.NewFunction(m.selectedText))
	L.SetField(mod, "text", L.NewFunction(m.text))
	L.SetField(mod, "len", L.NewFunction(m.length))
	L.SetField(mod, "line_count", L.NewFunction(m.lineCount))
	L.SetField(mod, "line", L.NewFunction(m.line))
	L.SetField(mod, "point", L.NewFunction(m.point))
	L.SetField(mod, "offset", L.NewFunction(m.offset))
	L.SetField(mod, "set_color", L.NewFunction(m.setColor))
	L.SetField(mod, "color_at", L.NewFunction(m.colorAt))
	L.SetField(mod, "clear_colors", L.NewFunction(m.clearColors))

	L.SetGlobal(ModuleName, mod)
}

// move(name [, extend])
func (m *module) move(L *lua.LState) int {
	name := L.CheckString(1)
	extend := L.OptBool(2, false)
	if err := m.eng.MoveNamed(name, extend); err != nil {
		L.ArgError(1, err.Error())
	}
	return 0
}

// write(text)
func (m *module) write(L *lua.LState) int {
	if err := m.eng.Write(L.CheckString(1)); err != nil {
		L.RaiseError("write: %v", err)
	}
	return 0
}

// delete(name) deletes by movement; with no argument it removes the
// selected text.
func (m *module) delete(L *lua.LState) int {
	if L.GetTop() == 0 {
		if err := m.eng.RemoveSelection(); err != nil {
			L.RaiseError("delete: %v", err)
		}
		return 0
	}
	mv, err := engine.ParseMovement(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	if err := m.eng.Delete(mv); err != nil {
		L.RaiseError("delete: %v", err)
	}
	return 0
}

// cursor(offset)
func (m *module) cursor(L *lua.LState) int {
	m.eng.SetCursor(checkOffset(L, 1))
	return 0
}

// add_cursor(offset)
func (m *module) addCursor(L *lua.LState) int {
	m.eng.AddCursor(checkOffset(L, 1))
	return 0
}

// select(start, end)
func (m *module) selectRange(L *lua.LState) int {
	m.eng.SelectRange(checkOffset(L, 1), checkOffset(L, 2))
	return 0
}

func (m *module) selectAll(L *lua.LState) int {
	m.eng.SelectAll()
	return 0
}

// selections() -> {{anchor=, head=, caret=}, ...}
func (m *module) selections(L *lua.LState) int {
	tbl := L.NewTable()
	for i, r := range m.eng.SelRegions() {
		region := L.NewTable()
		L.SetField(region, "anchor", lua.LNumber(r.Start))
		L.SetField(region, "head", lua.LNumber(r.End))
		L.SetField(region, "caret", lua.LBool(r.IsCaret()))
		tbl.RawSetInt(i+1, region)
	}
	L.Push(tbl)
	return 1
}

func (m *module) selectedText(L *lua.LState) int {
	L.Push(lua.LString(m.eng.SelectedText()))
	return 1
}

// text([start, end]) returns the whole text or a clamped slice of it.
func (m *module) text(L *lua.LState) int {
	if L.GetTop() == 0 {
		L.Push(lua.LString(m.eng.Text()))
		return 1
	}
	start := checkOffset(L, 1)
	end := engine.ByteOffset(L.OptInt64(2, int64(m.eng.Len())))
	L.Push(lua.LString(m.eng.TextRange(start, end)))
	return 1
}

func (m *module) length(L *lua.LState) int {
	L.Push(lua.LNumber(m.eng.Len()))
	return 1
}

func (m *module) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(m.eng.LineCount()))
	return 1
}

// line(n) returns line n without its line break.
func (m *module) line(L *lua.LState) int {
	n := L.CheckInt(1)
	if n < 0 || n >= m.eng.LineCount() {
		L.ArgError(1, "line out of range")
		return 0
	}
	L.Push(lua.LString(m.eng.LineText(n)))
	return 1
}

// point(offset) -> line, column
func (m *module) point(L *lua.LState) int {
	p := m.eng.OffsetToPoint(checkOffset(L, 1))
	L.Push(lua.LNumber(p.Line))
	L.Push(lua.LNumber(p.Column))
	return 2
}

// offset(line, column) -> offset
func (m *module) offset(L *lua.LState) int {
	p := engine.Point{Line: L.CheckInt(1), Column: engine.Column(L.CheckInt(2))}
	L.Push(lua.LNumber(m.eng.PointToOffset(p)))
	return 1
}

// set_color(start, end, "#rrggbb")
func (m *module) setColor(L *lua.LState) int {
	start, end := checkOffset(L, 1), checkOffset(L, 2)
	c, err := colorful.Hex(L.CheckString(3))
	if err != nil {
		L.ArgError(3, err.Error())
		return 0
	}
	m.eng.SetColor(start, end, c)
	return 0
}

// color_at(offset) -> "#rrggbb" or nil
func (m *module) colorAt(L *lua.LState) int {
	c, ok := m.eng.ColorAt(checkOffset(L, 1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(c.Hex()))
	return 1
}

func (m *module) clearColors(L *lua.LState) int {
	m.eng.ClearColors()
	return 0
}

func checkOffset(L *lua.LState, n int) engine.ByteOffset {
	return engine.ByteOffset(L.CheckInt64(n))
}
