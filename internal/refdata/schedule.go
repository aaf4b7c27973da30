package refdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Weekdays 排班表中的星期列名，顺序与命令行星期序号一致
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Schedule 某个星期几生效的城市→分店映射
// 城市键统一为大写；值为空串表示该城市当天不配送
type Schedule map[string]string

// ParseSchedule 解析每周排班表 (tsv)，取出指定星期几那一列
// 必须包含 City 列和对应星期列，否则返回错误
func ParseSchedule(r io.Reader, weekday string) (Schedule, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("读取排班表表头失败: %w", err)
	}

	cityIdx := -1
	dayIdx := -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "City":
			cityIdx = i
		case weekday:
			dayIdx = i
		}
	}
	if cityIdx < 0 {
		return nil, fmt.Errorf("排班表缺少 City 列")
	}
	if dayIdx < 0 {
		return nil, fmt.Errorf("排班表缺少 %s 列", weekday)
	}

	schedule := Schedule{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("读取排班表失败: %w", err)
		}
		city := strings.ToUpper(strings.TrimSpace(record[cityIdx]))
		if city == "" {
			continue
		}
		schedule[city] = strings.TrimSpace(record[dayIdx])
	}

	return schedule, nil
}

// LoadSchedule 从文件加载排班表并按分店打印当天配送城市
func LoadSchedule(path, weekday string, branches []string) (Schedule, error) {
	log.Printf("应用 %s 排班", weekday)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开排班表失败: %w", err)
	}
	defer f.Close()

	schedule, err := ParseSchedule(f, weekday)
	if err != nil {
		return nil, err
	}

	for _, branch := range branches {
		var cities []string
		for city, value := range schedule {
			if value == branch {
				cities = append(cities, city)
			}
		}
		log.Printf("%s: %s", branch, strings.Join(cities, ", "))
	}

	return schedule, nil
}
