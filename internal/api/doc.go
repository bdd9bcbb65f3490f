// Package api exposes the task service over HTTP.
//
// Handlers decode and validate JSON requests, call service.TaskService and
// map its errors onto status codes with HandleAPIError. Routes:
//
//	GET    /api/tasks                   list tasks (?room, ?frequency)
//	POST   /api/tasks                   create a task
//	GET    /api/tasks/{id}              fetch a task
//	DELETE /api/tasks/{id}              delete a task
//	PUT    /api/tasks/{id}/recurrence   change frequency, day or anchor
//	POST   /api/tasks/{id}/complete     record a completion
//	GET    /api/tasks/{id}/occurrences  due dates within ?start..?end
//	GET    /api/agenda                  tasks due on ?date (default today)
//	POST   /api/schedule/rebalance      reassign weekly days
//	POST   /api/schedule/preview        balance a hypothetical task list
//	POST   /api/schedule/rollover       advance stale due dates now
//	POST   /api/suggestions             ask the LLM for chore ideas
package api
