package record

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Import 解析 gnuplot 数据文本。
// 忽略空行和 # 开头的注释行，字段以空格或制表符分隔，无法解析为数字的字段被丢弃。
// 不检查每行字段数量是否一致。
func Import(data string) [][]float64 {
	rows := [][]float64{}
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		row := []float64{}
		for _, field := range strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == '\t' }) {
			if v, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err == nil {
				row = append(row, v)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Export 生成 gnuplot 数据文本，header 原样写在开头，sep 一般为空格或制表符
func Export(rows [][]float64, header string, sep rune) string {
	var b strings.Builder
	b.WriteString(header)
	if header != "" && !strings.HasSuffix(header, "\n") {
		b.WriteByte('\n')
	}
	for _, row := range rows {
		for i, v := range row {
			if i > 0 {
				b.WriteRune(sep)
			}
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteGnuplot 输出时间和节点值，第一列为时间
func (r *Record) WriteGnuplot(w io.Writer) error {
	header := "# time"
	for _, n := range r.Nodes {
		header += " " + n
	}
	rows := make([][]float64, len(r.Time))
	for i, t := range r.Time {
		rows[i] = append([]float64{t}, r.Values[i]...)
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Export(rows, header, ' ')); err != nil {
		return err
	}
	return bw.Flush()
}
