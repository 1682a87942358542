// Package main 提供 videohub 仪表盘命令行：查看视频列表、点赞、播放与上传。
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
