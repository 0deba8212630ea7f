package handle

// nameHandleCache is a generic bidirectional name<->handle map. All
// entries are added on first successful resolution and never invalidated
// during a session (spec §3); Clear empties both directions on teardown.
type nameHandleCache[H comparable] struct {
	byName   map[string]H
	byHandle map[H]string
}

func newNameHandleCache[H comparable]() *nameHandleCache[H] {
	return &nameHandleCache[H]{
		byName:   make(map[string]H),
		byHandle: make(map[H]string),
	}
}

func (c *nameHandleCache[H]) Put(name string, h H) {
	c.byName[name] = h
	c.byHandle[h] = name
}

func (c *nameHandleCache[H]) HandleOf(name string) (H, bool) {
	h, ok := c.byName[name]
	return h, ok
}

func (c *nameHandleCache[H]) NameOf(h H) (string, bool) {
	name, ok := c.byHandle[h]
	return name, ok
}

func (c *nameHandleCache[H]) Clear() {
	c.byName = make(map[string]H)
	c.byHandle = make(map[H]string)
}

// Caches holds every per-engine handle cache described in spec §4.7:
// object class, interaction class, and object instance name maps, plus the
// per-class attribute-name and per-interaction parameter-name sub-maps,
// which are created lazily on first insertion for that class/interaction.
type Caches struct {
	objectClasses      *nameHandleCache[ObjectClassHandle]
	interactionClasses *nameHandleCache[InteractionClassHandle]
	objectInstances    *nameHandleCache[ObjectInstanceHandle]

	attributesByClass map[ObjectClassHandle]*nameHandleCache[AttributeHandle]
	parametersByIC    map[InteractionClassHandle]*nameHandleCache[ParameterHandle]
}

// NewCaches creates an empty set of handle caches.
func NewCaches() *Caches {
	return &Caches{
		objectClasses:      newNameHandleCache[ObjectClassHandle](),
		interactionClasses: newNameHandleCache[InteractionClassHandle](),
		objectInstances:    newNameHandleCache[ObjectInstanceHandle](),
		attributesByClass:  make(map[ObjectClassHandle]*nameHandleCache[AttributeHandle]),
		parametersByIC:     make(map[InteractionClassHandle]*nameHandleCache[ParameterHandle]),
	}
}

func (c *Caches) PutObjectClass(name string, h ObjectClassHandle) {
	c.objectClasses.Put(name, h)
}

func (c *Caches) ObjectClassHandleOf(name string) (ObjectClassHandle, bool) {
	return c.objectClasses.HandleOf(name)
}

func (c *Caches) ObjectClassNameOf(h ObjectClassHandle) (string, bool) {
	return c.objectClasses.NameOf(h)
}

func (c *Caches) PutInteractionClass(name string, h InteractionClassHandle) {
	c.interactionClasses.Put(name, h)
}

func (c *Caches) InteractionClassHandleOf(name string) (InteractionClassHandle, bool) {
	return c.interactionClasses.HandleOf(name)
}

func (c *Caches) InteractionClassNameOf(h InteractionClassHandle) (string, bool) {
	return c.interactionClasses.NameOf(h)
}

func (c *Caches) PutObjectInstance(name string, h ObjectInstanceHandle) {
	c.objectInstances.Put(name, h)
}

func (c *Caches) ObjectInstanceHandleOf(name string) (ObjectInstanceHandle, bool) {
	return c.objectInstances.HandleOf(name)
}

func (c *Caches) ObjectInstanceNameOf(h ObjectInstanceHandle) (string, bool) {
	return c.objectInstances.NameOf(h)
}

// PutAttribute inserts a name/handle pair into class's attribute cache,
// lazily creating the sub-map on first insertion for that class.
func (c *Caches) PutAttribute(class ObjectClassHandle, name string, h AttributeHandle) {
	sub, ok := c.attributesByClass[class]
	if !ok {
		sub = newNameHandleCache[AttributeHandle]()
		c.attributesByClass[class] = sub
	}
	sub.Put(name, h)
}

func (c *Caches) AttributeHandleOf(class ObjectClassHandle, name string) (AttributeHandle, bool) {
	sub, ok := c.attributesByClass[class]
	if !ok {
		return AttributeHandle{}, false
	}
	return sub.HandleOf(name)
}

func (c *Caches) AttributeNameOf(class ObjectClassHandle, h AttributeHandle) (string, bool) {
	sub, ok := c.attributesByClass[class]
	if !ok {
		return "", false
	}
	return sub.NameOf(h)
}

// PutParameter inserts a name/handle pair into ic's parameter cache,
// lazily creating the sub-map on first insertion for that interaction.
func (c *Caches) PutParameter(ic InteractionClassHandle, name string, h ParameterHandle) {
	sub, ok := c.parametersByIC[ic]
	if !ok {
		sub = newNameHandleCache[ParameterHandle]()
		c.parametersByIC[ic] = sub
	}
	sub.Put(name, h)
}

func (c *Caches) ParameterHandleOf(ic InteractionClassHandle, name string) (ParameterHandle, bool) {
	sub, ok := c.parametersByIC[ic]
	if !ok {
		return ParameterHandle{}, false
	}
	return sub.HandleOf(name)
}

func (c *Caches) ParameterNameOf(ic InteractionClassHandle, h ParameterHandle) (string, bool) {
	sub, ok := c.parametersByIC[ic]
	if !ok {
		return "", false
	}
	return sub.NameOf(h)
}

// Clear empties every cache. Called on session teardown (spec §3).
func (c *Caches) Clear() {
	c.objectClasses.Clear()
	c.interactionClasses.Clear()
	c.objectInstances.Clear()
	c.attributesByClass = make(map[ObjectClassHandle]*nameHandleCache[AttributeHandle])
	c.parametersByIC = make(map[InteractionClassHandle]*nameHandleCache[ParameterHandle])
}
