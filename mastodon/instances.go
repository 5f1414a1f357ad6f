package mastodon

import (
	"net/http"

	"github.com/Cherry/wildebeest/internal/to"
)

func InstancesIndexV1(env *Env, w http.ResponseWriter, r *http.Request) error {
	instance, err := env.Instances().Get()
	if err != nil {
		return statusError(err)
	}
	serialise := Serialiser{req: r}
	return to.JSON(w, serialise.InstanceV1(instance))
}

func InstancesIndexV2(env *Env, w http.ResponseWriter, r *http.Request) error {
	instance, err := env.Instances().Get()
	if err != nil {
		return statusError(err)
	}
	serialise := Serialiser{req: r}
	return to.JSON(w, serialise.InstanceV2(instance))
}
