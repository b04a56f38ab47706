package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/errors"

	"github.com/aerissecure/gridimage"
	"github.com/aerissecure/gridimage/docx"
	"github.com/aerissecure/gridimage/grid"
	"github.com/aerissecure/gridimage/xlsx"
)

// tableFile is the JSON input format.
type tableFile struct {
	Rows   [][]string   `json:"rows"`
	Merges []mergeEntry `json:"merges"`
}

type mergeEntry struct {
	FirstRow int `json:"first_row"`
	LastRow  int `json:"last_row"`
	Column   int `json:"column"`
}

// load fills table from the file at path, chosen by extension.
func load(table *gridimage.Table, path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Newf("read %s", path).Wrap(err)
		}
		var tf tableFile
		if err := json.Unmarshal(data, &tf); err != nil {
			return errors.Newf("parse %s", path).Wrap(err)
		}
		return tf.apply(table)
	case ".xlsx":
		g, err := xlsx.Open(path)
		if err != nil {
			return err
		}
		return copyGrid(table, g)
	case ".docx":
		g, err := docx.Open(path)
		if err != nil {
			return err
		}
		return copyGrid(table, g)
	default:
		return errors.Newf("unsupported input %q", ext)
	}
}

func (tf tableFile) apply(table *gridimage.Table) error {
	for _, row := range tf.Rows {
		table.AddRow(row...)
	}
	for _, m := range tf.Merges {
		if err := table.MergeRows(m.FirstRow, m.LastRow, m.Column); err != nil {
			return err
		}
	}
	return nil
}

func copyGrid(table *gridimage.Table, g *grid.Grid) error {
	for r := 0; r < g.NumRows(); r++ {
		table.AddRow(g.Row(r)...)
	}
	for _, region := range g.Regions() {
		if err := table.MergeRows(region.FirstRow, region.LastRow, region.Column); err != nil {
			return err
		}
	}
	return nil
}

// demoTable is the department and staff listing with two merged department
// columns.
var demoTable = tableFile{
	Rows: [][]string{
		{"部门", "姓名", "年龄", "职业"},
		{"技术部", "张三", "25", "工程师"},
		{"", "李四死死死死四重垦局阿赛洛烦死撒娇发腮了;", "28", "设计师"},
		{"", "王五", "87896876876575764565465453543564654535435643543245676530", "产品经理"},
		{"市场部", "赵六", "32", "销售"},
		{"", "钱七", "35", "市场经理"},
	},
	Merges: []mergeEntry{
		{FirstRow: 1, LastRow: 3, Column: 0},
		{FirstRow: 4, LastRow: 5, Column: 0},
	},
}

func loadDemo(table *gridimage.Table) error {
	return demoTable.apply(table)
}
