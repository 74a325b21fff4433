/*
Package vkr implements a small rendering core atop the Vulkan graphics
framework for go. Vulkan gives applications very direct control over the GPU
at the price of a great deal of ceremony - instance and device setup, surface
and swapchain management, pipeline construction and frame synchronization all
have to be spelled out by hand.

This package packages that ceremony into a set of wrapper objects plus a
Renderer which drives them. It deliberately covers a narrow slice of Vulkan:
one window, one graphics pipeline, a static vertex buffer, and a fixed ring of
frames in flight. Within that slice it handles the parts that are easy to get
wrong - device suitability checks, swapchain recreation on resize, staging
buffer uploads and the semaphore/fence choreography of the frame loop.

The native Vulkan handles are exposed on every object in fields prefixed with
'VK', so applications that outgrow the provided APIs can drop down to the raw
bindings without fighting the package.

A typical application looks like:

 1. Create a window with the windowing layer of your choice and wrap it in a
    Surfacer (a GLFW adapter is provided).
 2. Configure a Renderer with a name, vertex data and compiled SPIR-V shader
    bytecode, then call Init.
 3. Call DrawFrame once per tick of the event loop, and NotifyResize from the
    window's resize callback.
 4. Call Destroy on the way out.

See examples/triangle for a complete program.
*/
package vkr
