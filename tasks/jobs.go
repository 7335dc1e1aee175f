package tasks

import (
	"corvustext.com/tagger/redisclient"
)

const JobsDB redisclient.DB = 1

type JobTask struct {
	UserCanceled           bool `json:"user_canceled"`
	StopDocumentsOnFailure bool `json:"stop_documents_on_failure"`
}

type JobTasks struct {
	client redisclient.Client
}

func (tasks JobTasks) GetCached(redisKey string) (*JobTask, error) {
	var task JobTask
	key := cachedPropertiesKey(redisKey)
	err := tasks.client.GetDocument(key, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
