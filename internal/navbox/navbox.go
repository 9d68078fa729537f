package navbox

import (
	"fmt"
	"strings"

	"github.com/TimXiedada/wikifur-persons-template-bot/internal/model"
)

// EntrySeparator separates the links of one column.
const EntrySeparator = " {{·}} "

// staticGroupIndex is the index of the trailing "no article yet" column.
const staticGroupIndex = 10

const header = "<noinclude>\n" +
	"== 编辑须知 ==\n" +
	"# 兽圈是一个包容性非常强的群体，即便你不出名，你没有拿得出手的作品，'''甚至你认为你只是一个普通人'''，你都可以在这里创建属于你自己的词条。\n" +
	"# 欢迎每一位毛茸茸创建属于自己的词条或修订关于自己的词条，因为'''你比任何人都要了解你自己'''。\n" +
	// The missing newline is part of the live page text.
	"# 该模板由机器人维护。当你创建了属于你的词条后，你的名字将于次日或者当日早上7点出现在这个页面上。" +
	"# 你可以在[[gh:TimXiedada/wikifur-persons-template-bot|这个GitHub仓库]]找到机器人的源代码（一部分模块使用Vibe Coding方式开发）。\n" +
	"# WikiFur是一个比较专业（或者说严肃）的百科平台，请各位在编辑词条时不要使用太过主观（或随意）的语言。\n" +
	"# WikiFur并不是一个新闻的收集仓库，除非是十分重要的事件，否则请不要加入过多的时事性内容。\n" +
	"# 基于现代中文出版物的做法，该模板中，逝世的人物将会用 {{Departed|示亡号}} 标记。\n\n" +
	"== 模板正文 == \n" +
	"</noinclude>\n" +
	"{{Navbox\n" +
	"|name = 人物\n" +
	"|title = 已收录的人物（总览）\n" +
	"|group1 = 成员\n" +
	"|list1=\n\n" +
	"{{Navbox subgroup\n"

const (
	staticGroupLabel = "未在 [[WikiFur]] 创建词条"
	staticGroupList  = ">>>>>>>>请前往[[模板:人物/未创建词条人物列表]]查看。<<<<<<<<"
)

const footer = "}}\n\n" +
	"}}\n\n" +
	"<noinclude>\n\n" +
	"[[分類:相關內容目錄|{{PAGENAME}}]]</noinclude>\n"

// Render produces the template text for the given groups. Every group
// becomes one numbered column listing the records of its buckets in bucket
// order; a group whose buckets are all empty yields an empty list.
func Render(groups []model.GroupSpec, buckets model.Buckets) string {
	var b strings.Builder
	b.WriteString(header)

	for i, g := range groups {
		n := i + 1
		fmt.Fprintf(&b, "|group%d = %s\n", n, g.Label())
		fmt.Fprintf(&b, "|list%d = %s\n\n", n, strings.Join(entries(g, buckets), EntrySeparator))
	}

	n := StaticGroupIndex(len(groups))
	fmt.Fprintf(&b, "|group%d = %s\n", n, staticGroupLabel)
	fmt.Fprintf(&b, "|list%d = %s\n", n, staticGroupList)

	b.WriteString(footer)
	return b.String()
}

// StaticGroupIndex returns the column index of the trailing static group.
// It stays at 10 unless the letter groups already reach that index.
func StaticGroupIndex(groupCount int) int {
	if groupCount >= staticGroupIndex {
		return groupCount + 1
	}
	return staticGroupIndex
}

// Link returns the wikitext link for one record.
func Link(r model.PageRecord) string {
	var link string
	if r.IsUserPage {
		link = "[[用户:" + r.Title + "|" + r.Title + "]]"
	} else {
		link = "[[" + r.Title + "]]"
	}
	if r.IsDeceased {
		return "{{Departed|" + link + "}}"
	}
	return link
}

func entries(g model.GroupSpec, buckets model.Buckets) []string {
	var out []string
	for _, key := range g.Keys {
		for _, r := range buckets.Get(key) {
			out = append(out, Link(r.PageRecord))
		}
	}
	return out
}
