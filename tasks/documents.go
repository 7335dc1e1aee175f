package tasks

import (
	"corvustext.com/tagger/redisclient"
)

const DocumentsDB redisclient.DB = 0

type DocumentTask struct {
	FailedTasks  []string            `json:"failed_tasks"`
	FailedChunks map[string][]string `json:"failed_chunks"`
}

type DocumentTasks struct {
	client redisclient.Client
}

func (tasks DocumentTasks) Get(redisKey string) (*DocumentTask, error) {
	var task DocumentTask
	err := tasks.client.GetDocument(redisKey, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (tasks DocumentTasks) Update(redisKey string, updateFunc func(task *DocumentTask)) error {
	var task DocumentTask
	return tasks.client.UpdateDocument(redisKey, &task, func() {
		if task.FailedChunks == nil {
			task.FailedChunks = make(map[string][]string)
		}
		updateFunc(&task)
	})
}
