package model

// NumberedTask is a task with its 1-based position in a listing, so a
// listed task can be picked by number.
type NumberedTask struct {
	Num  int  `json:"num"`
	Task Task `json:"task"`
}

// Number numbers tasks in order, starting at 1.
func Number(tasks []Task) []NumberedTask {
	out := make([]NumberedTask, len(tasks))
	for i, t := range tasks {
		out[i] = NumberedTask{Num: i + 1, Task: t}
	}
	return out
}
