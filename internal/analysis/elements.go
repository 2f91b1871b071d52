package analysis

import "arise/internal/arcadia"

// Adapters from the typed ARCADIA model to the uniform Element view.
// The Kind strings guard contextual comparison: elements of different
// kinds are never contextually similar.

func operationalActorElement(a arcadia.OperationalActor) Element {
	return Element{
		Kind:             "actor",
		Name:             a.Name,
		Description:      a.Description,
		Responsibilities: a.Responsibilities,
		Capabilities:     a.Capabilities,
	}
}

func operationalCapabilityElement(c arcadia.OperationalCapability) Element {
	return Element{
		Kind:             "capability",
		Name:             c.Name,
		Description:      c.Description,
		MissionStatement: c.MissionStatement,
		Actors:           c.InvolvedActors,
	}
}

func systemActorElement(a arcadia.SystemActor) Element {
	return Element{
		Kind:        "actor",
		Name:        a.Name,
		Description: a.Description,
	}
}

func systemActorElements(actors []arcadia.SystemActor) []Element {
	out := make([]Element, len(actors))
	for i, a := range actors {
		out[i] = systemActorElement(a)
	}
	return out
}

func systemFunctionElement(f arcadia.SystemFunction) Element {
	return Element{
		Kind:        "function",
		Name:        f.Name,
		Description: f.Description,
		Actors:      f.AllocatedActors,
		Parent:      f.ParentFunction,
		SubElements: f.SubFunctions,
	}
}

func systemCapabilityElement(c arcadia.SystemCapability) Element {
	return Element{
		Kind:        "capability",
		Name:        c.Name,
		Description: c.Description,
	}
}

func systemCapabilityElements(capabilities []arcadia.SystemCapability) []Element {
	out := make([]Element, len(capabilities))
	for i, c := range capabilities {
		out[i] = systemCapabilityElement(c)
	}
	return out
}

func logicalComponentElement(c arcadia.LogicalComponent) Element {
	return Element{
		Kind:             "component",
		Name:             c.Name,
		Description:      c.Description,
		Responsibilities: c.Responsibilities,
		Parent:           c.ParentComponent,
		SubElements:      c.SubComponents,
	}
}

func logicalComponentElements(components []arcadia.LogicalComponent) []Element {
	out := make([]Element, len(components))
	for i, c := range components {
		out[i] = logicalComponentElement(c)
	}
	return out
}

func logicalFunctionElement(f arcadia.LogicalFunction) Element {
	return Element{
		Kind:             "function",
		Name:             f.Name,
		Description:      f.Description,
		Parent:           f.ParentSystemFunction,
		SubElements:      f.SubFunctions,
		InputInterfaces:  f.InputInterfaces,
		OutputInterfaces: f.OutputInterfaces,
	}
}

func logicalFunctionElements(functions []arcadia.LogicalFunction) []Element {
	out := make([]Element, len(functions))
	for i, f := range functions {
		out[i] = logicalFunctionElement(f)
	}
	return out
}

func physicalComponentElement(c arcadia.PhysicalComponent) Element {
	return Element{
		Kind:        "component",
		Name:        c.Name,
		Description: c.Description,
	}
}

func physicalComponentElements(components []arcadia.PhysicalComponent) []Element {
	out := make([]Element, len(components))
	for i, c := range components {
		out[i] = physicalComponentElement(c)
	}
	return out
}

func physicalFunctionElement(f arcadia.PhysicalFunction) Element {
	return Element{
		Kind:        "function",
		Name:        f.Name,
		Description: f.Description,
		Parent:      f.ParentLogicalFunction,
	}
}

func physicalFunctionElements(functions []arcadia.PhysicalFunction) []Element {
	out := make([]Element, len(functions))
	for i, f := range functions {
		out[i] = physicalFunctionElement(f)
	}
	return out
}

// Name slices for coverage computation.

func operationalActorNames(actors []arcadia.OperationalActor) []string {
	out := make([]string, len(actors))
	for i, a := range actors {
		out[i] = a.Name
	}
	return out
}

func systemActorNames(actors []arcadia.SystemActor) []string {
	out := make([]string, len(actors))
	for i, a := range actors {
		out[i] = a.Name
	}
	return out
}

func operationalCapabilityNames(capabilities []arcadia.OperationalCapability) []string {
	out := make([]string, len(capabilities))
	for i, c := range capabilities {
		out[i] = c.Name
	}
	return out
}

func systemCapabilityNames(capabilities []arcadia.SystemCapability) []string {
	out := make([]string, len(capabilities))
	for i, c := range capabilities {
		out[i] = c.Name
	}
	return out
}
