// demo 在参考组织树上依次执行：打印、把 Tyler Simpson(11) 调到 Georgine Flangy(14) 之下、打印、撤销、打印。
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"org_chart_go/internal/model"
	"org_chart_go/internal/orgtree"
	"org_chart_go/pkg/log"
)

func main() {
	log.Init("info", "console", "")
	defer log.Sync()

	editor, err := orgtree.New(orgtree.DemoTree(orgtree.NewIDGenerator()))
	if err != nil {
		log.Fatal("Failed to build demo tree", err)
	}

	printTree("initial", editor.CEO())

	if err := editor.Move(11, 14); err != nil {
		log.Fatal("Move failed", err)
	}
	printTree("after move(11, 14)", editor.CEO())

	if err := editor.Undo(); err != nil {
		log.Fatal("Undo failed", err)
	}
	printTree("after undo", editor.CEO())
}

func printTree(title string, root *model.Employee) {
	out, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		log.Fatal("Failed to encode tree", err)
	}
	fmt.Fprintf(os.Stdout, "== %s\n%s\n", title, out)
}
