package dashboard

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/vo"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	statusStyles = map[po.VideoStatus]lipgloss.Style{
		po.VideoStatusPending:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		po.VideoStatusProcessing: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		po.VideoStatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		po.VideoStatusFailed:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

const statusColumn = 2

// Render 将一帧仪表盘写入 w。刷新失败时在表格上方显示可重试的错误提示。
func Render(w io.Writer, items []vo.VideoWithAnalytics, err error, polling bool) error {
	var out string
	out += titleStyle.Render(fmt.Sprintf("videohub · %d videos", len(items))) + "\n"
	if err != nil {
		out += errorStyle.Render("Failed to load videos: "+err.Error()+" (retrying automatically; press Enter to refresh now)") + "\n"
	}
	if len(items) == 0 {
		out += mutedStyle.Render("No videos yet.") + "\n"
		_, werr := io.WriteString(w, out)
		return werr
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.ID.String(),
			item.Title,
			string(item.Status),
			strconv.FormatInt(item.Views, 10),
			strconv.FormatInt(item.Likes, 10),
			item.CreatedAt.Local().Format(time.DateTime),
			item.VideoURL,
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "STATUS", "VIEWS", "LIKES", "CREATED", "URL").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == statusColumn && row >= 0 && row < len(items) {
				if s, ok := statusStyles[items[row].Status]; ok {
					return s.Padding(0, 1)
				}
			}
			return cellStyle
		})
	out += t.Render() + "\n"
	switch {
	case polling:
		out += mutedStyle.Render("Processing in progress; refreshing automatically.") + "\n"
	case err == nil:
		out += mutedStyle.Render("All videos settled. Press Enter to refresh.") + "\n"
	}
	_, werr := io.WriteString(w, out)
	return werr
}
